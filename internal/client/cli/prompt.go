package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/toolsubmit/internal/client/form"
	"github.com/dmitrijs2005/toolsubmit/internal/submission"
)

// promptForm asks for every text field of f in the order the web form
// shows them. Lists and pricing tiers are appended to whatever f holds.
func promptForm(reader *bufio.Reader, w io.Writer, f form.Form) (form.Form, error) {
	simple := []struct {
		prompt string
		set    func(form.Form, string) form.Form
	}{
		{"Contact email", form.Form.SetEmail},
		{"Product name", form.Form.SetName},
		{"Product URL", form.Form.SetURL},
	}
	for _, q := range simple {
		v, err := GetSimpleText(reader, q.prompt, w)
		if err != nil {
			return f, err
		}
		f = q.set(f, v)
	}

	category, err := promptCategory(reader, w)
	if err != nil {
		return f, err
	}
	f = f.SetCategory(category)

	description, err := GetMultiline(reader, fmt.Sprintf("Description (up to %d characters)", submission.MaxDescriptionLength), w)
	if err != nil {
		return f, err
	}
	f = f.SetDescription(description)

	verdict, err := GetMultiline(reader, "Verdict", w)
	if err != nil {
		return f, err
	}
	f = f.SetVerdict(verdict)

	lists := []struct {
		prompt string
		add    func(form.Form, string) form.Form
	}{
		{"Best for", form.Form.AddBestFor},
		{"Less good for", form.Form.AddLessGoodFor},
		{"Features", form.Form.AddFeature},
	}
	for _, l := range lists {
		items, err := GetList(reader, l.prompt, w)
		if err != nil {
			return f, err
		}
		for _, it := range items {
			f = l.add(f, it)
		}
	}

	if f, err = promptProCons(reader, w, "Pro", f, form.Form.AddPro); err != nil {
		return f, err
	}
	if f, err = promptProCons(reader, w, "Con", f, form.Form.AddCon); err != nil {
		return f, err
	}

	return promptTiers(reader, w, f)
}

// promptCategory accepts a list number or a category value.
func promptCategory(reader *bufio.Reader, w io.Writer) (string, error) {
	cats := submission.Categories()
	for {
		fmt.Fprintln(w, "Categories:")
		for i, c := range cats {
			fmt.Fprintf(w, "  %d) %s\n", i+1, c.Label)
		}
		v, err := GetSimpleText(reader, "Category", w)
		if err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= len(cats) {
			return cats[n-1].Value, nil
		}
		if submission.IsCategory(v) {
			return v, nil
		}
		fmt.Fprintln(w, "Unknown category.")
	}
}

func promptProCons(reader *bufio.Reader, w io.Writer, kind string, f form.Form,
	add func(form.Form, submission.ProCon) form.Form) (form.Form, error) {
	for {
		title, err := GetSimpleText(reader, kind+" title (empty to finish)", w)
		if err != nil {
			if done(err) {
				return f, nil
			}
			return f, err
		}
		if title == "" {
			return f, nil
		}
		desc, err := GetSimpleText(reader, kind+" description", w)
		if err != nil {
			return f, err
		}
		f = add(f, submission.ProCon{Title: title, Description: desc})
	}
}

func promptTiers(reader *bufio.Reader, w io.Writer, f form.Form) (form.Form, error) {
	for tier := len(f.Fields().PricingTiers); ; tier++ {
		name, err := GetSimpleText(reader, "Pricing tier name (empty to finish)", w)
		if err != nil {
			if done(err) {
				return f, nil
			}
			return f, err
		}
		if name == "" {
			return f, nil
		}
		price, err := GetNumber(reader, "Monthly price in USD", 0, w)
		if err != nil {
			return f, err
		}
		features, err := GetList(reader, "Tier features", w)
		if err != nil {
			return f, err
		}

		f = f.AddPricingTier(name, price)
		for _, ft := range features {
			f = f.AddTierFeature(tier, ft)
		}
	}
}

// done reports end of input at an optional prompt.
func done(err error) bool {
	return errors.Is(err, io.EOF)
}
