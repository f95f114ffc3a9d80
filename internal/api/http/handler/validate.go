package handler

import (
	"github.com/avoronin/devconnect-server/internal/model"
)

// fieldRule pairs a request field with the outcome of its validation
// rules. Rules run in declaration order so the error list is ordered.
type fieldRule struct {
	param string
	err   error
}

// collectFieldErrors builds a ValidationError from the violated rules,
// preserving field order. Returns nil when every rule passed.
func collectFieldErrors(rules []fieldRule) error {
	verr := &model.ValidationError{}
	for _, rule := range rules {
		if rule.err != nil {
			verr.Add(rule.param, rule.err.Error())
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
