package publish

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"landingpress/internal/config"
	"landingpress/internal/content"
	"landingpress/internal/models"
)

const validRawJSON = `{
	"biggestBusinessBenefitBuyerStatement": "Reduce costs by 40%",
	"BuyersName": "Acme",
	"SellersName": "Vendor",
	"meetingSchedulerLink": "https://calendly.com/x",
	"highestOperationalBenefit": {"benefits": [{"statement": "Save time", "content": "desc"}]}
}`

const validMeta = `{
	"page_url_key": "acme-vendor-0326",
	"buyer_id": "acme",
	"seller_id": "vendor",
	"mmyy": "0326"
}`

const testSecret = "s3cret"

var shaPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// fakeStore implements PageStore in memory.
type fakeStore struct {
	pages        map[string]*models.Page
	conflict     *models.Page
	finds        int
	upserts      int
	failUpsert   bool
	hideFromFind bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{pages: make(map[string]*models.Page)}
}

func (s *fakeStore) FindPublished(_ context.Context, slug string) (*models.Page, error) {
	s.finds++
	if s.hideFromFind {
		return nil, nil
	}
	return s.pages[slug], nil
}

func (s *fakeStore) SubdomainConflict(_ context.Context, _, _ string) (*models.Page, error) {
	return s.conflict, nil
}

func (s *fakeStore) Upsert(_ context.Context, page *models.Page) (*models.Page, bool, error) {
	s.upserts++
	if s.failUpsert {
		return nil, false, context.DeadlineExceeded
	}
	stored := *page
	stored.Version = 1
	if existing, ok := s.pages[page.Slug]; ok {
		if existing.ContentSha == page.ContentSha {
			return nil, false, nil
		}
		stored.Version = existing.Version + 1
	}
	s.pages[page.Slug] = &stored
	return &stored, true, nil
}

// fakeThrottle implements Throttle with a fixed remaining duration.
type fakeThrottle struct {
	remaining time.Duration
	marked    []string
}

func (t *fakeThrottle) Remaining(_ context.Context, _ string) time.Duration { return t.remaining }
func (t *fakeThrottle) Mark(_ context.Context, slug string)                 { t.marked = append(t.marked, slug) }

// fakeSideEffect stands in for the revalidator and the registrar.
type fakeSideEffect struct {
	calls int
	fail  bool
}

func (f *fakeSideEffect) Revalidate(_ context.Context, _ string) error { return f.call() }
func (f *fakeSideEffect) RegisterDomain(_ context.Context, _ string) error {
	return f.call()
}
func (f *fakeSideEffect) call() error {
	f.calls++
	if f.fail {
		return context.DeadlineExceeded
	}
	return nil
}

// fakeCache records invalidations.
type fakeCache struct {
	invalidated []string
}

func (c *fakeCache) Invalidate(_ context.Context, slug string) {
	c.invalidated = append(c.invalidated, slug)
}

// fakeAudit records audit entries.
type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) Record(_, action, _, _ string) { a.actions = append(a.actions, action) }

type testDeps struct {
	store    *fakeStore
	throttle *fakeThrottle
	reval    *fakeSideEffect
	register *fakeSideEffect
	cache    *fakeCache
	audit    *fakeAudit
}

func newTestPublisher(t *testing.T, cfg *config.Config) (*Publisher, *testDeps) {
	t.Helper()
	deps := &testDeps{
		store:    newFakeStore(),
		throttle: &fakeThrottle{},
		reval:    &fakeSideEffect{},
		register: &fakeSideEffect{},
		cache:    &fakeCache{},
		audit:    &fakeAudit{},
	}
	validator := content.NewValidator(content.DefaultLimits())
	p := New(cfg, validator, deps.store, deps.throttle,
		deps.cache, deps.reval, deps.register, deps.audit, nil)
	return p, deps
}

func testConfig() *config.Config {
	return &config.Config{
		Env:            "testing",
		PublishSecret:  testSecret,
		PublicBaseURL:  "https://pages.example.com",
		ThrottleWindow: 15 * time.Second,
	}
}

func TestPublishThenIdempotentRepublish(t *testing.T) {
	ctx := context.Background()
	p, deps := newTestPublisher(t, testConfig())

	first := p.Publish(ctx, []byte(validRawJSON), []byte(validMeta), testSecret)
	if !first.OK {
		t.Fatalf("first publish failed: %+v", first)
	}
	if !first.Changed {
		t.Error("first publish should report changed")
	}
	if !shaPattern.MatchString(first.ContentSha) {
		t.Errorf("contentSha: got %q", first.ContentSha)
	}
	if first.URL != "https://pages.example.com/p/acme-vendor-0326" {
		t.Errorf("url: got %q", first.URL)
	}
	if deps.store.upserts != 1 || deps.reval.calls != 1 || len(deps.throttle.marked) != 1 {
		t.Fatalf("expected one write, one revalidation, one throttle mark; got %d/%d/%d",
			deps.store.upserts, deps.reval.calls, len(deps.throttle.marked))
	}

	second := p.Publish(ctx, []byte(validRawJSON), []byte(validMeta), testSecret)
	if !second.OK {
		t.Fatalf("second publish failed: %+v", second)
	}
	if second.Changed {
		t.Error("identical republish should report changed=false")
	}
	if second.ContentSha != first.ContentSha || second.URL != first.URL {
		t.Error("idempotent republish should return the same sha and url")
	}

	// The no-op must produce no additional side effects of any kind.
	if deps.store.upserts != 1 {
		t.Errorf("no-op wrote to the store: %d upserts", deps.store.upserts)
	}
	if deps.reval.calls != 1 {
		t.Errorf("no-op triggered revalidation: %d calls", deps.reval.calls)
	}
	if len(deps.throttle.marked) != 1 {
		t.Errorf("no-op consumed throttle: %d marks", len(deps.throttle.marked))
	}
	if len(deps.cache.invalidated) != 1 {
		t.Errorf("no-op invalidated cache: %d", len(deps.cache.invalidated))
	}
}

func TestPublishChangedContent(t *testing.T) {
	ctx := context.Background()
	p, deps := newTestPublisher(t, testConfig())

	first := p.Publish(ctx, []byte(validRawJSON), []byte(validMeta), testSecret)
	changed := strings.Replace(validRawJSON, "Reduce costs by 40%", "Reduce costs by 50%", 1)
	second := p.Publish(ctx, []byte(changed), []byte(validMeta), testSecret)

	if !second.OK || !second.Changed {
		t.Fatalf("changed content should publish: %+v", second)
	}
	if second.ContentSha == first.ContentSha {
		t.Error("changed content should produce a different sha")
	}
	if deps.store.upserts != 2 {
		t.Errorf("expected 2 writes, got %d", deps.store.upserts)
	}
	if page := deps.store.pages["acme-vendor-0326"]; page.Version != 2 {
		t.Errorf("version: got %d, want 2", page.Version)
	}
}

// TestPublishUnauthorized verifies a bad secret fails before any
// datastore access.
func TestPublishUnauthorized(t *testing.T) {
	ctx := context.Background()
	p, deps := newTestPublisher(t, testConfig())

	for _, secret := range []string{"", "wrong", testSecret + "x", strings.ToUpper(testSecret)} {
		r := p.Publish(ctx, []byte(validRawJSON), []byte(validMeta), secret)
		if r.OK || r.Code != CodeAuth {
			t.Errorf("secret %q: got %+v, want E-AUTH failure", secret, r)
		}
	}
	if deps.store.finds != 0 || deps.store.upserts != 0 {
		t.Error("unauthorized publish touched the datastore")
	}
	if len(deps.throttle.marked) != 0 || deps.reval.calls != 0 {
		t.Error("unauthorized publish produced side effects")
	}
}

func TestPublishMissingServerSecret(t *testing.T) {
	cfg := testConfig()
	cfg.PublishSecret = ""
	p, _ := newTestPublisher(t, cfg)

	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(validMeta), "anything")
	if r.OK || r.Code != CodeAuth {
		t.Fatalf("got %+v, want E-AUTH", r)
	}
	if !strings.Contains(r.Error, "not configured") {
		t.Errorf("operator misconfiguration should be distinguishable: %q", r.Error)
	}
}

func TestPublishNullChecks(t *testing.T) {
	p, _ := newTestPublisher(t, testConfig())

	if r := p.Publish(context.Background(), nil, []byte(validMeta), testSecret); r.OK || r.Code != CodeRequest {
		t.Errorf("missing content: got %+v", r)
	}
	if r := p.Publish(context.Background(), []byte(validRawJSON), nil, testSecret); r.OK || r.Code != CodeRequest {
		t.Errorf("missing meta: got %+v", r)
	}
}

func TestPublishInvalidMeta(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())

	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(`{"page_url_key": "Bad Slug"}`), testSecret)
	if r.OK || r.Code != CodeMeta {
		t.Fatalf("got %+v, want E-META", r)
	}
	if len(r.ValidationErrors) == 0 {
		t.Error("meta failure should carry field-attributed items")
	}
	if deps.store.upserts != 0 {
		t.Error("meta failure wrote to the store")
	}
}

// TestPublishThrottled verifies the cooldown rejection happens before
// validation and persistence, with a retry hint.
func TestPublishThrottled(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())
	deps.throttle.remaining = 7 * time.Second

	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(validMeta), testSecret)
	if r.OK || r.Code != CodeThrottled {
		t.Fatalf("got %+v, want E-THROTTLED", r)
	}
	if r.RetryAfterSeconds != 7 {
		t.Errorf("retryAfterSeconds: got %d, want 7", r.RetryAfterSeconds)
	}
	if !strings.Contains(r.Error, "7 seconds") {
		t.Errorf("message should name the wait: %q", r.Error)
	}
	if deps.store.finds != 0 || deps.store.upserts != 0 {
		t.Error("throttled publish touched the datastore")
	}
}

func TestPublishContentValidationFailure(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())

	r := p.Publish(context.Background(), []byte(`{"BuyersName": "Acme"}`), []byte(validMeta), testSecret)
	if r.OK || r.Code != CodeValidation {
		t.Fatalf("got %+v, want E-VALIDATION", r)
	}
	if r.Error != "content validation failed" {
		t.Errorf("envelope message: got %q", r.Error)
	}
	if len(r.ValidationErrors) == 0 {
		t.Error("expected structured content errors")
	}
	if deps.store.finds != 0 || deps.store.upserts != 0 {
		t.Error("invalid content touched the datastore")
	}
}

func TestPublishSubdomainConflict(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())
	deps.store.conflict = &models.Page{Slug: "other-page", BuyerID: "rival", SellerID: "vendor2"}

	meta := `{"subdomain": "acme", "buyer_id": "acme", "seller_id": "vendor", "mmyy": "0326"}`
	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(meta), testSecret)
	if r.OK || r.Code != CodeConflict {
		t.Fatalf("got %+v, want E-CONFLICT", r)
	}
	if !strings.Contains(r.Error, "rival") {
		t.Errorf("conflict message should name the tenant: %q", r.Error)
	}
	if deps.store.upserts != 0 {
		t.Error("conflicting publish wrote to the store")
	}
}

func TestPublishReservedSubdomain(t *testing.T) {
	p, _ := newTestPublisher(t, testConfig())

	meta := `{"subdomain": "admin", "buyer_id": "acme", "seller_id": "vendor", "mmyy": "0326"}`
	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(meta), testSecret)
	if r.OK || r.Code != CodeConflict {
		t.Fatalf("got %+v, want E-CONFLICT for reserved subdomain", r)
	}
}

func TestPublishPersistFailure(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())
	deps.store.failUpsert = true

	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(validMeta), testSecret)
	if r.OK || r.Code != CodePersist {
		t.Fatalf("got %+v, want E-PERSIST", r)
	}
	// Not in development: no internal detail in the message.
	if strings.Contains(r.Error, "deadline") {
		t.Errorf("internal error detail leaked: %q", r.Error)
	}
	if len(deps.throttle.marked) != 0 || deps.reval.calls != 0 {
		t.Error("failed persist produced side effects")
	}
}

// TestPublishBestEffortFailures verifies a degraded cache bust or
// analytics registration never fails the publish.
func TestPublishBestEffortFailures(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())
	deps.reval.fail = true
	deps.register.fail = true

	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(validMeta), testSecret)
	if !r.OK || !r.Changed {
		t.Fatalf("publish should succeed despite side-effect failures: %+v", r)
	}

	var sawReval, sawAnalytics bool
	for _, action := range deps.audit.actions {
		switch action {
		case "revalidate_failed":
			sawReval = true
		case "analytics_failed":
			sawAnalytics = true
		}
	}
	if !sawReval || !sawAnalytics {
		t.Errorf("degraded side effects should be audited, got %v", deps.audit.actions)
	}
}

// TestPublishLostRaceIsNoop verifies a conditional-upsert skip (a
// concurrent identical publish won the race after the idempotency
// check) degrades to the idempotent no-op.
func TestPublishLostRaceIsNoop(t *testing.T) {
	p, deps := newTestPublisher(t, testConfig())

	first := p.Publish(context.Background(), []byte(validRawJSON), []byte(validMeta), testSecret)
	if !first.OK {
		t.Fatal("setup publish failed")
	}
	revalAfterFirst := deps.reval.calls

	// Hide the row from the idempotency check so the workflow reaches
	// Upsert, where the hash condition skips the write.
	deps.store.hideFromFind = true

	r := p.Publish(context.Background(), []byte(validRawJSON), []byte(validMeta), testSecret)
	if !r.OK || r.Changed {
		t.Fatalf("identical content should be a no-op: %+v", r)
	}
	if r.ContentSha != first.ContentSha {
		t.Error("no-op should return the stored sha")
	}
	if deps.reval.calls != revalAfterFirst {
		t.Error("lost race should not trigger revalidation")
	}
}
