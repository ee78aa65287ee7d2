// Package attribution derives installation metadata for a module file from
// the filesystem: its creation date and the service account that installed
// it.
package attribution

import (
	"context"
	"strings"
	"time"

	"github.com/hpcdocs/mods2docs/internal/modules"
)

// Unknown is the installer reported when no owner carries the service-account
// prefix.
const Unknown = "unknown"

// DateLayout is the format of creation dates.
const DateLayout = "2006-01-02"

// Attributor computes creation dates and installers.
type Attributor struct {
	lister Lister
	prefix string
	loc    *time.Location
}

// New returns an Attributor that lists files with lister and strips prefix
// from service-account owners.
func New(lister Lister, prefix string) *Attributor {
	return &Attributor{lister: lister, prefix: prefix, loc: time.Local}
}

// CreationDate returns the creation date of path as YYYY-MM-DD, or N/A.
func (a *Attributor) CreationDate(path string) string {
	t, err := creationTime(path)
	if err != nil {
		return modules.NotAvailable
	}
	return t.In(a.loc).Format(DateLayout)
}

// Installer returns the service account that owns path with the prefix
// removed, or Unknown.
func (a *Attributor) Installer(ctx context.Context, path string) string {
	out, err := a.lister.List(ctx, path)
	if err != nil {
		return Unknown
	}
	return OwnerFromListing(out, a.prefix)
}

// OwnerFromListing scans long-format listing output for the first owner
// column starting with prefix.
func OwnerFromListing(listing, prefix string) string {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) <= 2 {
			continue
		}
		if owner, ok := strings.CutPrefix(fields[2], prefix); ok && prefix != "" {
			return owner
		}
	}
	return Unknown
}
