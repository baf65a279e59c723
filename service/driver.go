// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"github.com/guangie88/nssm-exec/config"
)

// Result is the outcome of handling one service. A nil Err means
// success; otherwise Err carries the full causal chain.
type Result struct {
	Name string
	Err  error
}

// ReconcileAll reconciles every service in document order, strictly
// sequentially. One service's failure is reported and the batch moves
// on; the batch itself never aborts.
func ReconcileAll(r *Reconciler, cfg *config.Config) []Result {
	results := make([]Result, 0, len(cfg.Services))
	for _, svc := range cfg.Services {
		logger.Infof("creating service %q", svc.Name)
		result := Result{Name: svc.Name, Err: r.Reconcile(svc, cfg.Global)}
		reportResult(result)
		results = append(results, result)
	}
	return results
}

// StopAll stops every service in document order, with the same
// isolation between services as ReconcileAll.
func StopAll(r *Reconciler, cfg *config.Config) []Result {
	results := make([]Result, 0, len(cfg.Services))
	for _, svc := range cfg.Services {
		logger.Infof("stopping service %q", svc.Name)
		result := Result{Name: svc.Name, Err: r.StopOnly(svc)}
		reportResult(result)
		results = append(results, result)
	}
	return results
}

func reportResult(result Result) {
	if result.Err == nil {
		logger.Infof("service %q [OK]", result.Name)
	} else {
		logger.Errorf("service %q [FAILED]: %v", result.Name, result.Err)
	}
}

// Failed counts the failures in results.
func Failed(results []Result) int {
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}
	return failed
}
