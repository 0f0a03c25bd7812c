// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "fmt"

// defaultCTALabel is used for the hero and footer call-to-action.
const defaultCTALabel = "Schedule a meeting"

// Map converts raw seller input into the canonical rendering model.
// It is a pure function: no validation, no clock, no randomness — the
// same input always yields a structurally identical tree. Missing
// required fields propagate as empty strings; the rule engine rejects
// those before Map's output is ever trusted.
func Map(raw *Raw) *Normalized {
	headline := Sanitize(raw.BiggestBusinessBenefitBuyerStatement)
	buyer := Sanitize(raw.BuyersName)
	seller := Sanitize(raw.SellersName)

	// The hero CTA prefers the scheduling link, falls back to the
	// seller website, and stays empty when neither is set.
	ctaHref := Sanitize(raw.MeetingSchedulerLink)
	if ctaHref == "" {
		ctaHref = Sanitize(raw.SellerWebsiteLink)
	}

	n := &Normalized{
		Title: headline,
		Hero: Hero{
			Headline: headline,
			Subhead:  Sanitize(raw.SubHeadline),
			CTA:      CTA{Label: defaultCTALabel, Href: ctaHref},
		},
	}

	n.Benefits = mapBenefits(raw.HighestOperationalBenefit)
	n.Options = mapOptions(raw.OptionsIntro, raw.Options)
	n.Proof = mapProof(raw.Proof)
	n.Social = mapSocial(raw.SocialProof)
	n.Secondary = mapSecondary(raw, buyer, seller)
	n.Seller = mapSeller(raw, seller)
	n.Brand = mapBrand(raw.Brand)

	if desc := seoDescription(raw); desc != "" {
		n.SEO = &SEOSection{Description: desc}
	}

	// The footer mirrors the hero CTA only when there is one.
	if ctaHref != "" {
		n.Footer = &FooterSection{CTA: n.Hero.CTA}
	}

	return n
}

func mapBenefits(group *RawBenefitGroup) *BenefitSection {
	if group == nil {
		return nil
	}
	var items []Benefit
	for _, b := range group.Benefits {
		statement := Sanitize(b.Statement)
		body := Sanitize(b.Content)
		if statement == "" && body == "" {
			continue
		}
		items = append(items, Benefit{Statement: statement, Body: body})
	}
	if len(items) == 0 {
		return nil
	}
	return &BenefitSection{Heading: Sanitize(group.Heading), Items: items}
}

func mapOptions(intro string, options []RawOption) *OptionSection {
	var items []Option
	for _, o := range options {
		title := Sanitize(o.Title)
		if title == "" {
			continue
		}
		items = append(items, Option{
			Title:       title,
			Description: Sanitize(o.Description),
			Price:       Sanitize(o.Price),
		})
	}
	if len(items) == 0 {
		return nil
	}
	return &OptionSection{Intro: Sanitize(intro), Items: items}
}

func mapProof(quotes []RawQuote) *ProofSection {
	var items []Quote
	for _, q := range quotes {
		text := Sanitize(q.Quote)
		if text == "" {
			continue
		}
		items = append(items, Quote{Text: text, Attribution: Sanitize(q.Attribution)})
	}
	if len(items) == 0 {
		return nil
	}
	return &ProofSection{Items: items}
}

func mapSocial(social []RawSocialItem) *SocialSection {
	var items []SocialItem
	for _, s := range social {
		link := Sanitize(s.Link)
		if link == "" {
			continue
		}
		items = append(items, SocialItem{Label: Sanitize(s.Label), Link: link})
	}
	if len(items) == 0 {
		return nil
	}
	return &SocialSection{Items: items}
}

func mapSecondary(raw *Raw, buyer, seller string) *SecondarySection {
	sec := &SecondarySection{
		Body:     Sanitize(raw.ShortDescription),
		DemoLink: Sanitize(raw.DemoVideoLink),
	}
	// The question heading is derived only when both names are known.
	if buyer != "" && seller != "" {
		sec.Heading = fmt.Sprintf("How can %s help %s?", seller, buyer)
	}
	if sec.Heading == "" && sec.Body == "" && sec.DemoLink == "" {
		return nil
	}
	return sec
}

func mapSeller(raw *Raw, seller string) *SellerSection {
	s := &SellerSection{
		Name:         seller,
		About:        Sanitize(raw.SellerAbout),
		Website:      Sanitize(raw.SellerWebsiteLink),
		ReadMoreLink: Sanitize(raw.SellerReadMoreLink),
	}
	// The seller name alone is not substantive content; the section is
	// included only when it has something to show beyond the name.
	if s.About == "" && s.Website == "" && s.ReadMoreLink == "" {
		return nil
	}
	return s
}

func mapBrand(brand *RawBrand) *BrandSection {
	if brand == nil {
		return nil
	}
	b := &BrandSection{
		Background: Sanitize(brand.Background),
		Text:       Sanitize(brand.Text),
		Accent:     Sanitize(brand.Accent),
	}
	if b.Background == "" && b.Text == "" && b.Accent == "" {
		return nil
	}
	return b
}

// seoDescription picks the meta description source: the explicit field
// when present, otherwise the short description.
func seoDescription(raw *Raw) string {
	if desc := Sanitize(raw.MetaDescription); desc != "" {
		return desc
	}
	return Sanitize(raw.ShortDescription)
}
