// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

// Raw is the untrusted content tree a seller submits. Every field is
// optional at this layer; the rule engine decides what is actually
// required. Unknown keys in the incoming JSON are ignored by decoding,
// which is the extension-data allowance of the contract. Field names
// follow the authoring tool's payload, casing warts included.
type Raw struct {
	BiggestBusinessBenefitBuyerStatement string `json:"biggestBusinessBenefitBuyerStatement"`
	SubHeadline                          string `json:"subHeadline"`
	ShortDescription                     string `json:"shortDescription"`

	BuyersName  string `json:"BuyersName"`
	SellersName string `json:"SellersName"`

	MeetingSchedulerLink string `json:"meetingSchedulerLink"`
	SellerWebsiteLink    string `json:"sellerWebsiteLink"`
	SellerReadMoreLink   string `json:"sellerReadMoreLink"`
	SellerAbout          string `json:"sellerAbout"`
	DemoVideoLink        string `json:"demoVideoLink"`

	OptionsIntro              string           `json:"optionsIntro"`
	HighestOperationalBenefit *RawBenefitGroup `json:"highestOperationalBenefit"`
	Options                   []RawOption      `json:"options"`
	Proof                     []RawQuote       `json:"proof"`
	SocialProof               []RawSocialItem  `json:"socialProof"`

	Brand           *RawBrand `json:"brand"`
	MetaDescription string    `json:"metaDescription"`
}

// RawBenefitGroup carries the benefit items plus an optional heading.
type RawBenefitGroup struct {
	Heading  string       `json:"heading"`
	Benefits []RawBenefit `json:"benefits"`
}

// RawBenefit is one benefit bullet: a short statement plus body copy.
type RawBenefit struct {
	Statement string `json:"statement"`
	Content   string `json:"content"`
}

// RawOption is one pricing/package card.
type RawOption struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// RawQuote is one testimonial.
type RawQuote struct {
	Quote       string `json:"quote"`
	Attribution string `json:"attribution"`
}

// RawSocialItem is one social-proof entry (logo, case study, press
// mention) pointing at an external page.
type RawSocialItem struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

// RawBrand carries optional theme colors as hex strings.
type RawBrand struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}
