// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

// Normalized is the canonical content tree consumed by rendering.
// Title and Hero are always present; every other section is a pointer
// that is nil — and therefore absent from the JSON — unless it has
// substantive content. Renderers skip absent sections without gaps, so
// "empty but present" is a contract violation.
type Normalized struct {
	Title     string            `json:"title"`
	Hero      Hero              `json:"hero"`
	Benefits  *BenefitSection   `json:"benefits,omitempty"`
	Options   *OptionSection    `json:"options,omitempty"`
	Proof     *ProofSection     `json:"proof,omitempty"`
	Social    *SocialSection    `json:"social,omitempty"`
	Secondary *SecondarySection `json:"secondary,omitempty"`
	Seller    *SellerSection    `json:"seller,omitempty"`
	Footer    *FooterSection    `json:"footer,omitempty"`
	Brand     *BrandSection     `json:"brand,omitempty"`
	SEO       *SEOSection       `json:"seo,omitempty"`
}

// Hero is the above-the-fold block. CTA.Href may be empty, which
// renderers treat as "no CTA", not an error.
type Hero struct {
	Headline string `json:"headline"`
	Subhead  string `json:"subhead,omitempty"`
	CTA      CTA    `json:"cta"`
}

// CTA is a call-to-action link.
type CTA struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// BenefitSection lists the benefit bullets.
type BenefitSection struct {
	Heading string    `json:"heading,omitempty"`
	Items   []Benefit `json:"items"`
}

// Benefit is one normalized benefit bullet.
type Benefit struct {
	Statement string `json:"statement"`
	Body      string `json:"body,omitempty"`
}

// OptionSection lists the package/pricing cards.
type OptionSection struct {
	Intro string   `json:"intro,omitempty"`
	Items []Option `json:"items"`
}

// Option is one normalized card.
type Option struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
}

// ProofSection lists testimonials.
type ProofSection struct {
	Items []Quote `json:"items"`
}

// Quote is one normalized testimonial.
type Quote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution,omitempty"`
}

// SocialSection lists external social-proof links.
type SocialSection struct {
	Items []SocialItem `json:"items"`
}

// SocialItem is one normalized social-proof entry.
type SocialItem struct {
	Label string `json:"label,omitempty"`
	Link  string `json:"link"`
}

// SecondarySection holds the mid-page block: the derived question
// heading, supporting copy, and an optional demo video link.
type SecondarySection struct {
	Heading  string `json:"heading,omitempty"`
	Body     string `json:"body,omitempty"`
	DemoLink string `json:"demoLink,omitempty"`
}

// SellerSection is the about-the-seller block.
type SellerSection struct {
	Name         string `json:"name"`
	About        string `json:"about,omitempty"`
	Website      string `json:"website,omitempty"`
	ReadMoreLink string `json:"readMoreLink,omitempty"`
}

// FooterSection mirrors the hero CTA at the bottom of the page.
type FooterSection struct {
	CTA CTA `json:"cta"`
}

// BrandSection carries seller theme colors.
type BrandSection struct {
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
	Accent     string `json:"accent,omitempty"`
}

// SEOSection holds the meta description shown in search results.
type SEOSection struct {
	Description string `json:"description"`
}
