package content

import (
	"reflect"
	"testing"
)

// fullRaw returns a raw tree with every section populated.
func fullRaw() *Raw {
	return &Raw{
		BiggestBusinessBenefitBuyerStatement: "Reduce costs by 40%",
		SubHeadline:                          "A subhead",
		ShortDescription:                     "Short description copy.",
		BuyersName:                           "Acme",
		SellersName:                          "Vendor",
		MeetingSchedulerLink:                 "https://calendly.com/x",
		SellerWebsiteLink:                    "https://vendor.example.com",
		SellerReadMoreLink:                   "https://vendor.example.com/about",
		SellerAbout:                          "We sell things.",
		DemoVideoLink:                        "https://vimeo.com/123",
		OptionsIntro:                         "Pick a package.",
		HighestOperationalBenefit: &RawBenefitGroup{
			Heading:  "Why it works",
			Benefits: []RawBenefit{{Statement: "Save time", Content: "desc"}},
		},
		Options:     []RawOption{{Title: "Starter", Description: "Basics", Price: "$99"}},
		Proof:       []RawQuote{{Quote: "Loved it", Attribution: "A customer"}},
		SocialProof: []RawSocialItem{{Label: "Case study", Link: "https://example.com/case"}},
		Brand:       &RawBrand{Background: "#ffffff", Text: "#111111"},
	}
}

func TestMapHero(t *testing.T) {
	n := Map(fullRaw())

	if n.Title != "Reduce costs by 40%" {
		t.Errorf("title: got %q", n.Title)
	}
	if n.Hero.Headline != "Reduce costs by 40%" {
		t.Errorf("hero headline: got %q", n.Hero.Headline)
	}
	if n.Hero.CTA.Href != "https://calendly.com/x" {
		t.Errorf("hero cta: got %q, want scheduler link", n.Hero.CTA.Href)
	}
	if n.Footer == nil || n.Footer.CTA.Href != n.Hero.CTA.Href {
		t.Error("footer should mirror the hero CTA")
	}
}

func TestMapCTAFallback(t *testing.T) {
	raw := fullRaw()
	raw.MeetingSchedulerLink = ""
	n := Map(raw)
	if n.Hero.CTA.Href != "https://vendor.example.com" {
		t.Errorf("cta fallback: got %q, want seller website", n.Hero.CTA.Href)
	}

	raw.SellerWebsiteLink = ""
	n = Map(raw)
	if n.Hero.CTA.Href != "" {
		t.Errorf("cta with no links: got %q, want empty", n.Hero.CTA.Href)
	}
	if n.Footer != nil {
		t.Error("footer should be absent when there is no CTA")
	}
}

func TestMapDerivedHeading(t *testing.T) {
	n := Map(fullRaw())
	if n.Secondary == nil {
		t.Fatal("expected secondary section")
	}
	if n.Secondary.Heading != "How can Vendor help Acme?" {
		t.Errorf("derived heading: got %q", n.Secondary.Heading)
	}

	// The heading is omitted when either name is missing.
	raw := fullRaw()
	raw.BuyersName = ""
	n = Map(raw)
	if n.Secondary == nil {
		t.Fatal("expected secondary section from short description")
	}
	if n.Secondary.Heading != "" {
		t.Errorf("heading without buyer name: got %q, want empty", n.Secondary.Heading)
	}
}

// TestMapSectionOmission verifies the hard contract: structurally empty
// sections are entirely absent, never present-but-empty.
func TestMapSectionOmission(t *testing.T) {
	raw := &Raw{
		BiggestBusinessBenefitBuyerStatement: "Headline",
		BuyersName:                           "Acme",
		SellersName:                          "Vendor",
		Options:                              []RawOption{},
	}
	n := Map(raw)

	if n.Options != nil {
		t.Error("empty options list should map to an absent options section")
	}
	if n.Benefits != nil {
		t.Error("missing benefits should map to an absent benefits section")
	}
	if n.Proof != nil {
		t.Error("missing proof should map to an absent proof section")
	}
	if n.Social != nil {
		t.Error("missing social proof should map to an absent social section")
	}
	if n.Seller != nil {
		t.Error("seller section needs content beyond the name")
	}
	if n.Brand != nil {
		t.Error("missing brand should map to an absent brand section")
	}
	if n.Footer != nil {
		t.Error("no CTA means no footer")
	}
}

func TestMapSkipsBlankItems(t *testing.T) {
	raw := fullRaw()
	raw.Options = []RawOption{{Title: "  "}, {Title: "Real"}}
	raw.Proof = []RawQuote{{Quote: ""}, {Quote: "Kept"}}

	n := Map(raw)
	if n.Options == nil || len(n.Options.Items) != 1 {
		t.Fatalf("options: expected 1 item, got %+v", n.Options)
	}
	if n.Proof == nil || len(n.Proof.Items) != 1 {
		t.Fatalf("proof: expected 1 item, got %+v", n.Proof)
	}
}

// TestMapDeterminism verifies that mapping is a pure function: two runs
// over identical input produce deep-equal trees.
func TestMapDeterminism(t *testing.T) {
	a := Map(fullRaw())
	b := Map(fullRaw())
	if !reflect.DeepEqual(a, b) {
		t.Error("mapping the same input twice produced different trees")
	}
}
