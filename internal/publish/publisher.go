// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package publish

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"landingpress/internal/config"
	"landingpress/internal/content"
	"landingpress/internal/metrics"
	"landingpress/internal/models"
	"landingpress/internal/slug"
	"landingpress/internal/store"
)

// Publish-phase error codes. Content-level codes live in the content
// package; these cover the workflow gates.
const (
	CodeRequest    = "E-REQUEST"
	CodeAuth       = "E-AUTH"
	CodeMeta       = "E-META"
	CodeConflict   = "E-CONFLICT"
	CodeThrottled  = "E-THROTTLED"
	CodeValidation = "E-VALIDATION"
	CodePersist    = "E-PERSIST"
)

// Result is the publish outcome returned to the caller.
type Result struct {
	OK         bool   `json:"ok"`
	URL        string `json:"url,omitempty"`
	ContentSha string `json:"contentSha,omitempty"`
	Changed    bool   `json:"changed"`

	Code              string         `json:"code,omitempty"`
	Error             string         `json:"error,omitempty"`
	ValidationErrors  []content.Item `json:"validationErrors,omitempty"`
	Warnings          []content.Item `json:"warnings,omitempty"`
	RetryAfterSeconds int            `json:"retryAfterSeconds,omitempty"`
}

// PageStore is the persistence the publisher needs.
type PageStore interface {
	FindPublished(ctx context.Context, slug string) (*models.Page, error)
	SubdomainConflict(ctx context.Context, subdomain, slug string) (*models.Page, error)
	Upsert(ctx context.Context, page *models.Page) (*models.Page, bool, error)
}

// Throttle is the per-slug cooldown.
type Throttle interface {
	Remaining(ctx context.Context, slug string) time.Duration
	Mark(ctx context.Context, slug string)
}

// Revalidator busts the external render cache after a write.
type Revalidator interface {
	Revalidate(ctx context.Context, slug string) error
}

// Registrar authorizes the published URL with the analytics service.
type Registrar interface {
	RegisterDomain(ctx context.Context, pageURL string) error
}

// ContentCache is the local published-content cache.
type ContentCache interface {
	Invalidate(ctx context.Context, slug string)
}

// AuditLog records publish outcomes for operators.
type AuditLog interface {
	Record(slug, action, contentSha, detail string)
}

// Publisher runs the phased publish workflow. Phases 2-7 are hard
// gates with no side effects; everything after the persistence write is
// best-effort and never fails the publish.
type Publisher struct {
	cfg       *config.Config
	validator *content.Validator
	pages     PageStore
	throttle  Throttle

	// Optional collaborators; nil disables each.
	cache       ContentCache
	revalidator Revalidator
	registrar   Registrar
	audit       AuditLog
	metrics     *metrics.Metrics
}

// New creates a Publisher. cache, revalidator, registrar, audit, and m
// may be nil.
func New(cfg *config.Config, validator *content.Validator, pages PageStore, throttle Throttle,
	cache ContentCache, revalidator Revalidator, registrar Registrar, audit AuditLog, m *metrics.Metrics) *Publisher {
	return &Publisher{
		cfg:         cfg,
		validator:   validator,
		pages:       pages,
		throttle:    throttle,
		cache:       cache,
		revalidator: revalidator,
		registrar:   registrar,
		audit:       audit,
		metrics:     m,
	}
}

// Publish takes raw content JSON, publish metadata, and the caller's
// secret, and runs the full workflow. It never panics outward and never
// surfaces side-effect failures: a durably persisted page is a success
// even when the cache bust or analytics registration degrades.
func (p *Publisher) Publish(ctx context.Context, rawJSON, rawMeta json.RawMessage, secret string) Result {
	start := time.Now()

	// Phase 1: null checks.
	if len(rawJSON) == 0 || len(rawMeta) == 0 {
		return p.reject(Result{Code: CodeRequest, Error: "content and metadata are both required"})
	}

	// Phase 2: authentication. A missing server secret is an operator
	// problem, distinguished in logs but collapsed externally.
	if p.cfg.PublishSecret == "" {
		slog.Error("publish rejected: PUBLISH_SECRET is not configured")
		return p.reject(Result{Code: CodeAuth, Error: "publishing is not configured; contact an operator"})
	}
	if len(secret) != len(p.cfg.PublishSecret) ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(p.cfg.PublishSecret)) != 1 {
		return p.reject(Result{Code: CodeAuth, Error: "unauthorized"})
	}

	// Phase 3: metadata validation.
	meta, metaErrs := ParseMeta(rawMeta)
	if len(metaErrs) > 0 {
		return p.reject(Result{Code: CodeMeta, Error: "publish metadata is invalid", ValidationErrors: metaErrs})
	}

	// Phase 4: tenant/slug validation.
	pageKey := meta.Slug()
	if err := slug.Validate(pageKey); err != nil {
		return p.reject(Result{Code: CodeMeta, Error: fmt.Sprintf("invalid page key: %v", err)})
	}
	if p.cfg.PageDomain != "" && slug.IsReserved(pageKey) {
		return p.reject(Result{Code: CodeConflict, Error: fmt.Sprintf("%q is a reserved name; pick another slug", pageKey)})
	}
	if meta.Subdomain != "" {
		if err := slug.ValidateSubdomain(meta.Subdomain); err != nil {
			return p.reject(Result{Code: CodeConflict, Error: err.Error()})
		}
		conflict, err := p.pages.SubdomainConflict(ctx, meta.Subdomain, pageKey)
		if err != nil {
			return p.reject(p.persistFailure("subdomain conflict check failed", err))
		}
		if conflict != nil {
			return p.reject(Result{
				Code: CodeConflict,
				Error: fmt.Sprintf("subdomain %q is already claimed by tenant %s/%s; pick another slug",
					meta.Subdomain, conflict.BuyerID, conflict.SellerID),
			})
		}
	}

	// Phase 5: throttle check. Checking does not consume the cooldown.
	if remaining := p.throttle.Remaining(ctx, pageKey); remaining > 0 {
		seconds := int(math.Ceil(remaining.Seconds()))
		return p.reject(Result{
			Code:              CodeThrottled,
			Error:             fmt.Sprintf("this page was just published; wait %d seconds and try again", seconds),
			RetryAfterSeconds: seconds,
		})
	}

	// Phase 6: content validation.
	vr := p.validator.ValidateAndNormalize(rawJSON)
	if !vr.IsValid {
		p.metrics.Validation("invalid")
		return p.reject(Result{
			Code:             CodeValidation,
			Error:            "content validation failed",
			ValidationErrors: vr.Errors,
			Warnings:         vr.Warnings,
		})
	}
	p.metrics.Validation("valid")

	// Phase 7: idempotency. Identical content is a free no-op — no
	// write, no cache bust, no throttle penalty.
	existing, err := p.pages.FindPublished(ctx, pageKey)
	if err != nil {
		return p.reject(p.persistFailure("idempotency check failed", err))
	}
	if existing != nil && existing.ContentSha == vr.ContentSha {
		p.metrics.Publish("noop")
		p.record(pageKey, store.ActionNoop, vr.ContentSha, "")
		return Result{
			OK:         true,
			URL:        p.cfg.PageURL(pageKey),
			ContentSha: vr.ContentSha,
			Changed:    false,
			Warnings:   vr.Warnings,
		}
	}

	// Phase 8: persist.
	page := &models.Page{
		Slug:       pageKey,
		Subdomain:  meta.Subdomain,
		Status:     models.PageStatusPublished,
		Content:    models.PageBody{Normalized: vr.Normalized, Original: rawJSON},
		ContentSha: vr.ContentSha,
		BuyerID:    meta.BuyerID,
		SellerID:   meta.SellerID,
		MMYY:       meta.MMYY,
		BuyerName:  meta.BuyerName,
		SellerName: meta.SellerName,
	}
	_, wrote, err := p.pages.Upsert(ctx, page)
	if err != nil {
		return p.reject(p.persistFailure("could not save the page", err))
	}
	if !wrote {
		// Lost a race to an identical publish; the conditional upsert
		// skipped the write, so this degrades to the idempotent no-op.
		p.metrics.Publish("noop")
		p.record(pageKey, store.ActionNoop, vr.ContentSha, "conditional upsert skipped")
		return Result{
			OK:         true,
			URL:        p.cfg.PageURL(pageKey),
			ContentSha: vr.ContentSha,
			Changed:    false,
			Warnings:   vr.Warnings,
		}
	}

	// Phase 9: cache invalidation, local then external. Best-effort.
	if p.cache != nil {
		p.cache.Invalidate(ctx, pageKey)
	}
	if p.revalidator != nil {
		if err := p.revalidator.Revalidate(ctx, pageKey); err != nil {
			slog.Warn("revalidation failed after publish", "slug", pageKey, "error", err)
			p.metrics.SideEffect("revalidate", "failed")
			p.record(pageKey, store.ActionRevalidateFailed, vr.ContentSha, err.Error())
		} else {
			p.metrics.SideEffect("revalidate", "ok")
		}
	}

	// Phase 10: throttle update, only after a real write.
	p.throttle.Mark(ctx, pageKey)

	pageURL := p.cfg.PageURL(pageKey)

	// Phase 11: analytics domain registration. Best-effort.
	if p.registrar != nil {
		if err := p.registrar.RegisterDomain(ctx, pageURL); err != nil {
			slog.Warn("analytics registration failed after publish", "slug", pageKey, "error", err)
			p.metrics.SideEffect("analytics", "failed")
			p.record(pageKey, store.ActionAnalyticsFailed, vr.ContentSha, err.Error())
		} else {
			p.metrics.SideEffect("analytics", "ok")
		}
	}

	p.metrics.Publish("published")
	p.metrics.ObservePublish(time.Since(start).Seconds())
	p.record(pageKey, store.ActionPublished, vr.ContentSha, "")
	slog.Info("page published",
		"slug", pageKey,
		"content_sha", vr.ContentSha,
		"buyer_id", meta.BuyerID,
		"seller_id", meta.SellerID,
	)

	return Result{
		OK:         true,
		URL:        pageURL,
		ContentSha: vr.ContentSha,
		Changed:    true,
		Warnings:   vr.Warnings,
	}
}

// reject counts a rejected publish and passes the result through.
func (p *Publisher) reject(r Result) Result {
	p.metrics.Publish("rejected")
	return r
}

// persistFailure builds an E-PERSIST result. The internal error detail
// is only exposed in development; production callers get the generic
// message.
func (p *Publisher) persistFailure(msg string, err error) Result {
	slog.Error("publish persistence error", "error", err)
	if p.cfg.IsDev() {
		return Result{Code: CodePersist, Error: fmt.Sprintf("%s: %v", msg, err)}
	}
	return Result{Code: CodePersist, Error: msg}
}

// record writes an audit entry when the audit log is wired.
func (p *Publisher) record(slug, action, sha, detail string) {
	if p.audit != nil {
		p.audit.Record(slug, action, sha, detail)
	}
}
