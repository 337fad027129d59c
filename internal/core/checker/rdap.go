package checker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/openrdap/rdap"
	"golang.org/x/time/rate"
)

// RDAPChecker resolves availability through the RDAP protocol. A domain whose
// registry answers "object does not exist" can still be registered; a domain
// object in the response means it is taken. Every other shape is an error so
// the caller can fail closed.
type RDAPChecker struct {
	Client  *rdap.Client
	BaseURL string
	Timeout time.Duration
	Limiter *rate.Limiter
}

// Check performs one RDAP domain query.
func (c *RDAPChecker) Check(ctx context.Context, domain string) (bool, error) {
	if c == nil {
		return false, errors.New("rdap checker is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	value := strings.ToLower(strings.TrimSpace(domain))
	if value == "" {
		return false, errors.New("domain is required")
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	req := rdap.NewDomainRequest(value)
	if base := strings.TrimSpace(c.BaseURL); base != "" {
		server, err := url.Parse(base)
		if err != nil {
			return false, fmt.Errorf("invalid rdap server url: %w", err)
		}
		req = req.WithServer(server)
	}
	if c.Timeout > 0 {
		req.Timeout = c.Timeout
	}
	req = req.WithContext(ctx)

	client := c.Client
	if client == nil {
		client = &rdap.Client{}
	}

	resp, err := client.Do(req)
	if err != nil {
		if isNotFound(err) {
			return true, nil
		}
		return false, fmt.Errorf("rdap query for %s: %w", value, err)
	}

	if _, ok := resp.Object.(*rdap.Domain); ok {
		return false, nil
	}

	return false, fmt.Errorf("unexpected rdap response for %s", value)
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	clientErr, ok := err.(*rdap.ClientError)
	if !ok {
		return false
	}

	return clientErr.Type == rdap.ObjectDoesNotExist
}
