package resolver

import (
	"context"
	"strings"

	"notifysvc/internal/constants"
	"notifysvc/internal/directory"
	"notifysvc/internal/queue"
)

type Lookup interface {
	ByIDs(ctx context.Context, ids []string) ([]directory.Account, error)
	ByRole(ctx context.Context, role string) ([]directory.Account, error)
}

// Resolver determines the concrete delivery addresses for a job.
// Precedence, first non-empty branch wins: explicit user ids looked up
// against the directory, explicit addresses used verbatim, otherwise
// every admin account. All branches pass through the denylist filter.
type Resolver struct {
	directory Lookup
	denylist  map[string]struct{}
}

func New(dir Lookup, denylist []string) *Resolver {
	deny := make(map[string]struct{}, len(denylist))
	for _, addr := range denylist {
		deny[strings.ToLower(addr)] = struct{}{}
	}

	return &Resolver{directory: dir, denylist: deny}
}

// Resolve returns the ordered, deduplicated, filtered recipient list.
// An empty result is not an error; a directory failure is.
func (r *Resolver) Resolve(ctx context.Context, job *queue.Job) ([]string, error) {
	var addresses []string

	switch {
	case len(job.UserIDs) > 0:
		accounts, err := r.directory.ByIDs(ctx, job.UserIDs)
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			addresses = append(addresses, a.Email)
		}
	case len(job.Emails) > 0:
		addresses = job.Emails
	default:
		accounts, err := r.directory.ByRole(ctx, constants.RoleAdmin)
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			addresses = append(addresses, a.Email)
		}
	}

	return r.Filter(addresses), nil
}

// Filter removes empty and denylisted addresses (case-insensitive) and
// duplicates, preserving first-seen order. Filtering is idempotent.
func (r *Resolver) Filter(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	result := make([]string, 0, len(addresses))

	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, denied := r.denylist[key]; denied {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, addr)
	}

	return result
}
