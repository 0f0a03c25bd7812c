// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// rules.go is the content rule engine: independent, side-effect-free
// checks over raw input. Blocking rules return errors, advisory rules
// return warnings, and both run unconditionally so authors always see
// the whole picture.
package content

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Limits holds the soft caps for author-visible text fields, in Unicode
// code points. The hard limit is the soft cap times HardMultiplier,
// rounded up. These are policy, not law — callers may tune them.
type Limits struct {
	Headline       int
	Subhead        int
	ShortDesc      int
	OptionsIntro   int
	BenefitBody    int
	Quote          int
	HardMultiplier float64
}

// DefaultLimits returns the stock policy: 20% headroom over each soft cap.
func DefaultLimits() Limits {
	return Limits{
		Headline:       90,
		Subhead:        220,
		ShortDesc:      300,
		OptionsIntro:   250,
		BenefitBody:    400,
		Quote:          300,
		HardMultiplier: 1.2,
	}
}

// Hard returns the blocking limit for a soft cap.
func (l Limits) Hard(soft int) int {
	return int(math.Ceil(float64(soft) * l.HardMultiplier))
}

// minContrastRatio is the WCAG AA threshold for normal text.
const minContrastRatio = 4.5

// CheckRequired enforces the mandatory core: a non-empty headline
// statement, buyer and seller display names, and at least one
// substantive content section.
func CheckRequired(raw *Raw) []Item {
	var errs []Item
	if Sanitize(raw.BiggestBusinessBenefitBuyerStatement) == "" {
		errs = append(errs, Item{
			Code:    CodeRequired,
			Message: "headline statement is required",
			Field:   "biggestBusinessBenefitBuyerStatement",
		})
	}
	if Sanitize(raw.BuyersName) == "" {
		errs = append(errs, Item{Code: CodeRequired, Message: "buyer name is required", Field: "BuyersName"})
	}
	if Sanitize(raw.SellersName) == "" {
		errs = append(errs, Item{Code: CodeRequired, Message: "seller name is required", Field: "SellersName"})
	}

	if !hasSubstantiveSection(raw) {
		errs = append(errs, Item{
			Code:    CodeMinSection,
			Message: "page needs at least one content section: benefits, options, or proof",
		})
	}
	return errs
}

// hasSubstantiveSection reports whether at least one of benefits,
// options, or proof carries real content.
func hasSubstantiveSection(raw *Raw) bool {
	if raw.HighestOperationalBenefit != nil {
		for _, b := range raw.HighestOperationalBenefit.Benefits {
			if Sanitize(b.Statement) != "" || Sanitize(b.Content) != "" {
				return true
			}
		}
	}
	for _, o := range raw.Options {
		if Sanitize(o.Title) != "" {
			return true
		}
	}
	for _, q := range raw.Proof {
		if Sanitize(q.Quote) != "" {
			return true
		}
	}
	return false
}

// CheckLinks validates every externally-facing link field. A link that
// is present must be a well-formed https URL; anything else — http,
// protocol-relative, bare hostname, javascript: — is rejected with the
// code of its category.
func CheckLinks(raw *Raw) []Item {
	var errs []Item
	check := func(link, code, field string) {
		link = Sanitize(link)
		if link == "" {
			return
		}
		if !isHTTPSURL(link) {
			errs = append(errs, Item{
				Code:    code,
				Message: "link must be a valid https:// URL",
				Field:   field,
			})
		}
	}

	check(raw.MeetingSchedulerLink, CodeURLScheduler, "meetingSchedulerLink")
	check(raw.SellerWebsiteLink, CodeURLWebsite, "sellerWebsiteLink")
	check(raw.SellerReadMoreLink, CodeURLReadMore, "sellerReadMoreLink")
	check(raw.DemoVideoLink, CodeURLDemo, "demoVideoLink")
	for i, s := range raw.SocialProof {
		check(s.Link, CodeURLSocial, fmt.Sprintf("socialProof[%d].link", i))
	}
	return errs
}

// isHTTPSURL requires the https scheme by case-insensitive prefix and a
// structurally valid parse with a non-empty host.
func isHTTPSURL(link string) bool {
	if !strings.HasPrefix(strings.ToLower(link), "https://") {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Scheme, "https") && u.Host != ""
}

// CheckLengths applies the hard text limits. Fields between the soft
// cap and the hard limit are the soft-length rule's territory, not an
// error.
func CheckLengths(raw *Raw, limits Limits) []Item {
	var errs []Item
	for _, f := range lengthFields(raw, limits) {
		if n := utf8.RuneCountInString(Sanitize(f.value)); n > limits.Hard(f.soft) {
			errs = append(errs, Item{
				Code:    CodeLimit,
				Message: fmt.Sprintf("%s is too long: %d characters (max %d)", f.label, n, limits.Hard(f.soft)),
				Field:   f.field,
			})
		}
	}
	return errs
}

// CheckSoftLengths warns about fields over their soft cap but within
// the hard limit.
func CheckSoftLengths(raw *Raw, limits Limits) []Item {
	var warns []Item
	for _, f := range lengthFields(raw, limits) {
		n := utf8.RuneCountInString(Sanitize(f.value))
		if n > f.soft && n <= limits.Hard(f.soft) {
			warns = append(warns, Item{
				Code:    CodeSoftLength,
				Message: fmt.Sprintf("%s is %d characters; keeping it under %d reads better", f.label, n, f.soft),
				Field:   f.field,
			})
		}
	}
	return warns
}

// lengthField pairs a text value with its soft cap and attribution.
type lengthField struct {
	value string
	soft  int
	label string
	field string
}

// lengthFields enumerates every length-limited field, including each
// benefit body and quote. Both the hard and soft rules share this list
// so the two can never drift apart.
func lengthFields(raw *Raw, limits Limits) []lengthField {
	fields := []lengthField{
		{raw.BiggestBusinessBenefitBuyerStatement, limits.Headline, "headline", "biggestBusinessBenefitBuyerStatement"},
		{raw.SubHeadline, limits.Subhead, "subhead", "subHeadline"},
		{raw.ShortDescription, limits.ShortDesc, "short description", "shortDescription"},
		{raw.OptionsIntro, limits.OptionsIntro, "options intro", "optionsIntro"},
	}
	if raw.HighestOperationalBenefit != nil {
		for i, b := range raw.HighestOperationalBenefit.Benefits {
			fields = append(fields, lengthField{
				b.Content, limits.BenefitBody, "benefit body",
				fmt.Sprintf("highestOperationalBenefit.benefits[%d].content", i),
			})
		}
	}
	for i, q := range raw.Proof {
		fields = append(fields, lengthField{
			q.Quote, limits.Quote, "quote",
			fmt.Sprintf("proof[%d].quote", i),
		})
	}
	return fields
}

// CheckVideoHost warns when the demo link is a valid https URL but not
// hosted where the renderer can embed it; the page falls back to a
// plain link.
func CheckVideoHost(raw *Raw) []Item {
	link := Sanitize(raw.DemoVideoLink)
	if link == "" || !isHTTPSURL(link) {
		return nil
	}
	if strings.Contains(strings.ToLower(link), "vimeo.com") {
		return nil
	}
	return []Item{{
		Code:    CodeVideoHost,
		Message: "demo video is not hosted on vimeo.com; it will render as a plain link instead of an embed",
		Field:   "demoVideoLink",
	}}
}

// CheckContrast warns when the brand theme's background/text pair falls
// below WCAG AA contrast. The renderer substitutes black or white text
// in that case, so this only warns.
func CheckContrast(raw *Raw) []Item {
	if raw.Brand == nil {
		return nil
	}
	bg, okBG := parseHexColor(Sanitize(raw.Brand.Background))
	fg, okFG := parseHexColor(Sanitize(raw.Brand.Text))
	if !okBG || !okFG {
		return nil
	}
	ratio := contrastRatio(bg, fg)
	if ratio >= minContrastRatio {
		return nil
	}
	return []Item{{
		Code:    CodeContrast,
		Message: fmt.Sprintf("background/text contrast is %.2f:1, below the %.1f:1 minimum; text color will be auto-adjusted", ratio, minContrastRatio),
		Field:   "brand",
	}}
}
