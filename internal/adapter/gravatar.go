package adapter

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/okoval/notekeeper/internal/config"
	"github.com/okoval/notekeeper/internal/logger"
)

// gravatarAdapter is the Gravatar-backed implementation of [AvatarProvider].
//
// Avatar URLs follow the Gravatar convention: the md5 hex digest of the
// trimmed, lowercased email address, with d=identicon so addresses without a
// registered Gravatar still resolve to a generated image.
type gravatarAdapter struct {
	client  *resty.Client
	baseURL string
	logger  *logger.Logger
}

// NewGravatarAdapter constructs an [AvatarProvider] backed by the Gravatar
// image service. The base URL and per-request timeout come from cfg.
//
// Returns an error if cfg.GravatarBaseURL is empty or not a valid URL.
func NewGravatarAdapter(cfg config.Adapter, logger *logger.Logger) (AvatarProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.GravatarBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gravatar base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &gravatarAdapter{client: client, baseURL: baseURL, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// AvatarURL implements [AvatarProvider]. It derives the identicon URL for
// email and probes it with a HEAD request; an unreachable provider returns
// [ErrProviderUnreachable] so the caller can fall back to no avatar.
func (g *gravatarAdapter) AvatarURL(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrInvalidEmail
	}

	digest := md5.Sum([]byte(email))
	avatarURL := fmt.Sprintf("%s/avatar/%s?d=identicon", g.baseURL, hex.EncodeToString(digest[:]))

	resp, err := g.client.R().
		SetContext(ctx).
		Head(avatarURL)
	if err != nil {
		log.Warn().Err(err).Str("func", "*gravatarAdapter.AvatarURL").Msg("gravatar probe failed")
		return "", fmt.Errorf("%w: %w", ErrProviderUnreachable, err)
	}

	if resp.IsError() {
		log.Warn().Int("status", resp.StatusCode()).Str("func", "*gravatarAdapter.AvatarURL").Msg("gravatar probe rejected")
		return "", fmt.Errorf("%w: http %d", ErrProviderUnreachable, resp.StatusCode())
	}

	return avatarURL, nil
}
