package seeds

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hudsor01/tenant-flow-sub002/internal/database"
	"github.com/hudsor01/tenant-flow-sub002/internal/models"
)

// Owner identities created by the smoke seed.
const (
	OwnerA = "owner-a@test.com"
	OwnerB = "owner-b@test.com"
)

var ErrMissingTables = errors.New("required tables are missing")

// Options configures a verification run.
type Options struct {
	Tier     Tier
	Minimums Minimums
	// Schema qualifies table names on postgres. Empty uses the search_path.
	Schema string
	// Strict escalates soft checks to hard.
	Strict bool

	IsolationOwners        []string
	MinOwnerProperties int64
	MinDistinctMonths  int64
}

// DefaultOptions returns the built-in settings for tier.
func DefaultOptions(tier Tier) Options {
	return Options{
		Tier:               tier,
		Minimums:           DefaultMinimums[tier],
		Schema:             "public",
		IsolationOwners:        []string{OwnerA, OwnerB},
		MinOwnerProperties: 2,
		MinDistinctMonths:  6,
	}
}

// Verifier runs the seed checks sequentially over a single connection.
// It only ever reads.
type Verifier struct {
	db      *gorm.DB
	opts    Options
	results []CheckResult
}

func NewVerifier(db *gorm.DB, opts Options) *Verifier {
	return &Verifier{db: db, opts: opts}
}

// Run executes every check that applies to the tier. Check failures are recorded in
// the report; a query error stops the run and is returned with the partial report.
func (v *Verifier) Run(ctx context.Context) (*Report, error) {
	v.results = nil

	steps := []func(context.Context) error{
		v.checkSchema,
		v.checkRowCounts,
		v.checkSeedVersion,
	}
	if v.opts.Tier == Smoke {
		steps = append(steps, v.checkOwnerIsolation)
	} else {
		steps = append(steps, v.checkTemporalSpread)
	}
	steps = append(steps, v.checkReferentialIntegrity)

	report := &Report{Tier: v.opts.Tier}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			report.Results = v.results
			report.Aborted = true
			return report, err
		}
	}
	report.Results = v.results
	return report, nil
}

func (v *Verifier) record(r CheckResult) {
	if v.opts.Strict && r.Severity == Soft {
		r.Severity = Hard
	}
	v.results = append(v.results, r)
}

func (v *Verifier) table(name string) string {
	return database.Qualify(v.db, v.opts.Schema, name)
}

func (v *Verifier) scan(ctx context.Context, dest interface{}, sql string, args ...interface{}) error {
	return v.db.WithContext(ctx).Raw(sql, args...).Scan(dest).Error
}

// checkSchema fails fast with a readable error when tables are absent, rather than
// surfacing a driver error from the first count.
func (v *Verifier) checkSchema(ctx context.Context) error {
	var missing []string
	for _, table := range models.Tables() {
		ok, err := database.HasTable(ctx, v.db, v.opts.Schema, table)
		if err != nil {
			return err
		}
		if !ok {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTables, strings.Join(missing, ", "))
	}
	return nil
}
