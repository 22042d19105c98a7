package serviceiface

// Service is the unit the app manager boots and tears down in
// services.yaml order.
type Service interface {
	Name() string
	Start() error
	Stop() error
}
