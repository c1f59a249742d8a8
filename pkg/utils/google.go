package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	jose "github.com/square/go-jose/v3"
	"github.com/square/go-jose/v3/jwt"
)

// GoogleIdentity adalah isi ID token Google yang dipakai untuk login.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

type googleExtra struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

// GoogleVerifier memverifikasi ID token Google memakai JWKS publik Google.
// Key set disimpan di memori dan diambil ulang setelah cacheTTL.
type GoogleVerifier struct {
	ClientID string
	CertsURL string
	Client   *http.Client

	mu        sync.Mutex
	keys      *jose.JSONWebKeySet
	fetchedAt time.Time
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewGoogleVerifier(clientID, certsURL string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID: clientID,
		CertsURL: certsURL,
		Client:   &http.Client{Timeout: 10 * time.Second},
		cacheTTL: time.Hour,
		now:      time.Now,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if v.ClientID == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID belum dikonfigurasi")
	}
	tok, err := jwt.ParseSigned(idToken)
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	if len(tok.Headers) == 0 {
		return nil, errors.New("id token tanpa header")
	}

	set, err := v.keySet(ctx, false)
	if err != nil {
		return nil, err
	}
	kid := tok.Headers[0].KeyID
	keys := set.Key(kid)
	if len(keys) == 0 {
		// Google merotasi kunci, coba ambil ulang sekali.
		if set, err = v.keySet(ctx, true); err != nil {
			return nil, err
		}
		if keys = set.Key(kid); len(keys) == 0 {
			return nil, fmt.Errorf("kunci %q tidak ditemukan", kid)
		}
	}

	var std jwt.Claims
	var extra googleExtra
	if err := tok.Claims(keys[0].Key, &std, &extra); err != nil {
		return nil, fmt.Errorf("verifikasi tanda tangan: %w", err)
	}

	err = std.ValidateWithLeeway(jwt.Expected{
		Audience: jwt.Audience{v.ClientID},
		Time:     v.now(),
	}, time.Minute)
	if err != nil {
		return nil, err
	}
	if !validIssuer(std.Issuer) {
		return nil, fmt.Errorf("issuer %q tidak dikenal", std.Issuer)
	}
	if extra.Email == "" {
		return nil, errors.New("id token tidak memuat email")
	}

	return &GoogleIdentity{
		Subject:       std.Subject,
		Email:         extra.Email,
		EmailVerified: extra.EmailVerified,
		Name:          extra.Name,
	}, nil
}

func validIssuer(iss string) bool {
	for _, s := range googleIssuers {
		if iss == s {
			return true
		}
	}
	return false
}

func (v *GoogleVerifier) keySet(ctx context.Context, refresh bool) (*jose.JSONWebKeySet, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !refresh && v.keys != nil && v.now().Sub(v.fetchedAt) < v.cacheTTL {
		return v.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.CertsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ambil JWKS google: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ambil JWKS google: status %d", resp.StatusCode)
	}

	var set jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode JWKS google: %w", err)
	}
	v.keys = &set
	v.fetchedAt = v.now()
	return v.keys, nil
}
