package api

import "context"

type contextKey string

const (
	ContractorCodesKey contextKey = "contractorCodes"
	UserNameKey        contextKey = "userName"
	SessionKey         contextKey = "session"
)

// GetContractorCodesFromCtx returns the contractor codes the current
// session may read, as loaded by ContractorAccessMiddleware.
func GetContractorCodesFromCtx(ctx context.Context) []string {
	if codes, ok := ctx.Value(ContractorCodesKey).([]string); ok {
		return codes
	}
	return []string{}
}

// GetUserNameFromCtx returns the display name of the session user.
func GetUserNameFromCtx(ctx context.Context) string {
	if name, ok := ctx.Value(UserNameKey).(string); ok {
		return name
	}
	return ""
}
