// Package form holds a product application while it is being filled in.
//
// A Form is an immutable value: every operation returns an updated copy and
// leaves the receiver untouched, so earlier versions can be kept around
// safely. Index-based operations ignore out-of-range indexes.
package form

import (
	"slices"

	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

type Form struct {
	fields      submission.Submission
	logo        *Asset
	screenshots []Asset
}

// New returns an empty form with every list initialised.
func New() Form {
	return FromDraft(submission.Submission{})
}

// FromDraft starts a form from pre-filled text fields. Logo and screenshots
// in s are ignored; images are attached with SetLogo and AddScreenshots.
func FromDraft(s submission.Submission) Form {
	f := Form{fields: cloneFields(s)}
	f.fields.Logo = nil
	f.fields.Screenshots = nil
	return f
}

// Fields returns a copy of the text fields. Logo and Screenshots are unset.
func (f Form) Fields() submission.Submission {
	return cloneFields(f.fields)
}

func (f Form) Logo() (Asset, bool) {
	if f.logo == nil {
		return Asset{}, false
	}
	return f.logo.clone(), true
}

func (f Form) Screenshots() []Asset {
	return cloneAssets(f.screenshots)
}

func (f Form) SetEmail(v string) Form { f.fields.Email = v; return f }
func (f Form) SetName(v string) Form { f.fields.Name = v; return f }
func (f Form) SetDescription(v string) Form { f.fields.Description = v; return f }
func (f Form) SetCategory(v string) Form { f.fields.Category = v; return f }
func (f Form) SetURL(v string) Form { f.fields.URL = v; return f }
func (f Form) SetVerdict(v string) Form { f.fields.Verdict = v; return f }
func (f Form) SetRating(v float64) Form { f.fields.Rating = v; return f }

func (f Form) AddPro(pc submission.ProCon) Form { f.fields.Pros = added(f.fields.Pros, pc); return f }
func (f Form) UpdatePro(i int, pc submission.ProCon) Form {
	f.fields.Pros = updated(f.fields.Pros, i, pc)
	return f
}
func (f Form) RemovePro(i int) Form { f.fields.Pros = removed(f.fields.Pros, i); return f }

func (f Form) AddCon(pc submission.ProCon) Form { f.fields.Cons = added(f.fields.Cons, pc); return f }
func (f Form) UpdateCon(i int, pc submission.ProCon) Form {
	f.fields.Cons = updated(f.fields.Cons, i, pc)
	return f
}
func (f Form) RemoveCon(i int) Form { f.fields.Cons = removed(f.fields.Cons, i); return f }

func (f Form) AddBestFor(v string) Form { f.fields.BestFor = added(f.fields.BestFor, v); return f }
func (f Form) UpdateBestFor(i int, v string) Form {
	f.fields.BestFor = updated(f.fields.BestFor, i, v)
	return f
}
func (f Form) RemoveBestFor(i int) Form { f.fields.BestFor = removed(f.fields.BestFor, i); return f }

func (f Form) AddLessGoodFor(v string) Form {
	f.fields.LessGoodFor = added(f.fields.LessGoodFor, v)
	return f
}
func (f Form) UpdateLessGoodFor(i int, v string) Form {
	f.fields.LessGoodFor = updated(f.fields.LessGoodFor, i, v)
	return f
}
func (f Form) RemoveLessGoodFor(i int) Form {
	f.fields.LessGoodFor = removed(f.fields.LessGoodFor, i)
	return f
}

func (f Form) AddFeature(v string) Form { f.fields.Features = added(f.fields.Features, v); return f }
func (f Form) UpdateFeature(i int, v string) Form {
	f.fields.Features = updated(f.fields.Features, i, v)
	return f
}
func (f Form) RemoveFeature(i int) Form { f.fields.Features = removed(f.fields.Features, i); return f }

// AddPricingTier appends a tier with no features.
func (f Form) AddPricingTier(name string, price float64) Form {
	f.fields.PricingTiers = added(f.fields.PricingTiers, submission.PricingTier{
		Name:     name,
		Price:    price,
		Features: []string{},
	})
	return f
}

// UpdatePricingTier changes a tier's name and price and keeps its features.
func (f Form) UpdatePricingTier(i int, name string, price float64) Form {
	if !inRange(f.fields.PricingTiers, i) {
		return f
	}
	t := f.fields.PricingTiers[i]
	t.Name, t.Price = name, price
	f.fields.PricingTiers = updated(f.fields.PricingTiers, i, t)
	return f
}

func (f Form) RemovePricingTier(i int) Form {
	f.fields.PricingTiers = removed(f.fields.PricingTiers, i)
	return f
}

func (f Form) AddTierFeature(tier int, v string) Form {
	return f.editTier(tier, func(features []string) []string { return added(features, v) })
}

func (f Form) UpdateTierFeature(tier, i int, v string) Form {
	return f.editTier(tier, func(features []string) []string { return updated(features, i, v) })
}

func (f Form) RemoveTierFeature(tier, i int) Form {
	return f.editTier(tier, func(features []string) []string { return removed(features, i) })
}

func (f Form) editTier(tier int, edit func([]string) []string) Form {
	if !inRange(f.fields.PricingTiers, tier) {
		return f
	}
	t := f.fields.PricingTiers[tier]
	t.Features = edit(t.Features)
	f.fields.PricingTiers = updated(f.fields.PricingTiers, tier, t)
	return f
}

func (f Form) SetLogo(a Asset) Form {
	a = a.clone()
	f.logo = &a
	return f
}

func (f Form) RemoveLogo() Form {
	f.logo = nil
	return f
}

// AddScreenshots appends assets and keeps only the first
// submission.MaxScreenshots of the combined list.
func (f Form) AddScreenshots(assets ...Asset) Form {
	all := added(f.screenshots, cloneAssets(assets)...)
	if len(all) > submission.MaxScreenshots {
		all = all[:submission.MaxScreenshots]
	}
	f.screenshots = all
	return f
}

func (f Form) RemoveScreenshot(i int) Form {
	f.screenshots = removed(f.screenshots, i)
	return f
}

// added, updated and removed never write into the backing array of s.

func added[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s...)
	return append(out, v...)
}

func updated[T any](s []T, i int, v T) []T {
	if !inRange(s, i) {
		return s
	}
	out := slices.Clone(s)
	out[i] = v
	return out
}

func removed[T any](s []T, i int) []T {
	if !inRange(s, i) {
		return s
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func inRange[T any](s []T, i int) bool {
	return i >= 0 && i < len(s)
}

func cloneFields(s submission.Submission) submission.Submission {
	out := s
	out.Pros = orEmpty(slices.Clone(s.Pros))
	out.Cons = orEmpty(slices.Clone(s.Cons))
	out.BestFor = orEmpty(slices.Clone(s.BestFor))
	out.LessGoodFor = orEmpty(slices.Clone(s.LessGoodFor))
	out.Features = orEmpty(slices.Clone(s.Features))

	out.PricingTiers = make([]submission.PricingTier, len(s.PricingTiers))
	for i, t := range s.PricingTiers {
		t.Features = orEmpty(slices.Clone(t.Features))
		out.PricingTiers[i] = t
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
