package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/config"
	"github.com/sells-group/cre-datagen/internal/generate"
	"github.com/sells-group/cre-datagen/internal/inject"
	"github.com/sells-group/cre-datagen/internal/model"
)

// Batch is the generated data for one (kind, category) pair.
type Batch struct {
	Kind      model.Kind
	Category  model.PropertyCategory
	Records   []model.Record
	EdgeCases []model.Record
	Errors    *inject.ErrorVariants
}

// Rows returns the clean records followed by the edge cases.
func (b Batch) Rows() []model.Record {
	out := make([]model.Record, 0, len(b.Records)+len(b.EdgeCases))
	out = append(out, b.Records...)
	return append(out, b.EdgeCases...)
}

// Plan describes what Build generates.
type Plan struct {
	Categories      []model.PropertyCategory
	Kinds           []model.Kind
	Counts          config.CountsConfig
	EdgeCases       bool
	EdgeProbability float64
	Errors          bool
}

// Build generates every batch of the plan in category order, then kind
// order, drawing all randomness from the generator's source so a fixed seed
// reproduces the same batches.
func Build(gen *generate.Generator, inj *inject.Injector, plan Plan) ([]Batch, error) {
	src := gen.Source()
	batches := make([]Batch, 0, len(plan.Categories)*len(plan.Kinds))

	for _, cat := range plan.Categories {
		var occupied []string
		haveUnits := false

		for _, k := range plan.Kinds {
			rng := plan.Counts.For(k)
			count := src.IntRange(rng.Min, rng.Max)

			var (
				recs []model.Record
				err  error
			)
			switch {
			case k == model.KindRentRoll:
				var units []model.RentRollUnit
				units, err = gen.RentRoll(count, cat)
				if err == nil {
					occupied = generate.OccupiedUnitIDs(units)
					haveUnits = true
					recs = model.Flatten(units)
				}
			case k == model.KindTenantRoster && haveUnits:
				var tenants []model.TenantInfo
				tenants, err = gen.TenantRosterForUnits(count, cat, occupied)
				if err == nil {
					recs = model.Flatten(tenants)
				}
			default:
				recs, err = gen.Dataset(k, count, cat)
			}
			if err != nil {
				return nil, eris.Wrapf(err, "pipeline: generate %s for %s", k, cat)
			}

			b := Batch{Kind: k, Category: cat, Records: recs}
			if plan.EdgeCases {
				b.EdgeCases = inj.EdgeCases(recs, plan.EdgeProbability)
			}
			if plan.Errors {
				v := inject.SynthesizeErrors(recs)
				b.Errors = &v
			}
			batches = append(batches, b)
		}
	}
	return batches, nil
}
