package resource

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"PharmalyticsSaas/internal/logger"
	"PharmalyticsSaas/internal/serviceiface"
)

// ResourceManager periodically probes the health endpoints of the local
// services and keeps the last observed status for each.
type ResourceManager struct {
	healthTargets     map[string]string
	lastStatus        map[string]bool
	mu                sync.RWMutex
	stopChan          chan struct{}
	heartbeatInterval time.Duration
}

func NewResourceManagerService(cfg map[string]interface{}) serviceiface.Service {
	interval := 30 * time.Second // default
	if val, ok := cfg["heartbeat_interval"]; ok {
		switch v := val.(type) {
		case string:
			if d, err := time.ParseDuration(v); err == nil {
				interval = d
			}
		case float64:
			interval = time.Duration(v) * time.Second
		}
	}
	return &ResourceManager{
		healthTargets: map[string]string{
			"schedule": "http://localhost:6254/schedule/health",
			"dash":     "http://localhost:4254/dash/health",
			"gateway":  "http://localhost:8254/health",
		},
		lastStatus:        make(map[string]bool),
		stopChan:          make(chan struct{}),
		heartbeatInterval: interval,
	}
}

func (rm *ResourceManager) Name() string { return "resourcemanager" }

func (rm *ResourceManager) Start() error {
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("ResourceManager started")
	}
	go rm.heartbeatLoop()
	return nil
}

func (rm *ResourceManager) Stop() error {
	close(rm.stopChan)
	return nil
}

func (rm *ResourceManager) heartbeatLoop() {
	ticker := time.NewTicker(rm.heartbeatInterval)
	defer ticker.Stop()
	client := &http.Client{Timeout: 5 * time.Second}
	for {
		select {
		case <-rm.stopChan:
			return
		case <-ticker.C:
			rm.probeAll(client)
		}
	}
}

func (rm *ResourceManager) probeAll(client *http.Client) {
	for name, url := range rm.healthTargets {
		healthy := false
		resp, err := client.Get(url)
		if err == nil {
			healthy = resp.StatusCode >= 200 && resp.StatusCode < 300
			resp.Body.Close()
		}

		rm.mu.Lock()
		was, seen := rm.lastStatus[name]
		rm.lastStatus[name] = healthy
		rm.mu.Unlock()

		// Only log transitions, not every probe.
		if seen && was == healthy {
			continue
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("heartbeat: service %s healthy=%v", name, healthy))
		}
	}
}

// ServiceStatus returns the last observed health per service.
func (rm *ResourceManager) ServiceStatus() map[string]bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	out := make(map[string]bool, len(rm.lastStatus))
	for k, v := range rm.lastStatus {
		out[k] = v
	}
	return out
}
