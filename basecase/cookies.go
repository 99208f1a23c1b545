package basecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-rod/rod/lib/proto"
)

// GetCookie returns the named cookie's value, or ok=false when absent.
func (c *Case) GetCookie(name string) (value string, ok bool, err error) {
	if err := c.requireTab(); err != nil {
		return "", false, err
	}
	cookies, err := c.tab.Page.Context(c.ctx).Cookies(nil)
	if err != nil {
		return "", false, fmt.Errorf("basecase: get cookie %q: %w", name, err)
	}
	for _, ck := range cookies {
		if ck.Name == name {
			return ck.Value, true, nil
		}
	}
	return "", false, nil
}

// SetCookie sets a cookie on the current page's domain.
func (c *Case) SetCookie(name, value string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	u, err := c.CurrentURL()
	if err != nil {
		return err
	}
	err = c.tab.Page.Context(c.ctx).SetCookies([]*proto.NetworkCookieParam{{
		Name:  name,
		Value: value,
		URL:   u,
	}})
	if err != nil {
		return fmt.Errorf("basecase: set cookie %q: %w", name, err)
	}
	return nil
}

// DeleteCookies removes every cookie in the browser context.
func (c *Case) DeleteCookies() error {
	if err := c.requireTab(); err != nil {
		return err
	}
	if err := c.tab.Page.Context(c.ctx).SetCookies(nil); err != nil {
		return fmt.Errorf("basecase: delete cookies: %w", err)
	}
	return nil
}

// SaveCookies writes the current cookies to a JSON file, for reuse by a
// later session via LoadCookies.
func (c *Case) SaveCookies(path string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	cookies, err := c.tab.Page.Context(c.ctx).Cookies(nil)
	if err != nil {
		return fmt.Errorf("basecase: save cookies: %w", err)
	}
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("basecase: save cookies: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("basecase: save cookies: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("basecase: save cookies: %w", err)
	}
	return nil
}

// LoadCookies restores cookies saved by SaveCookies into this session.
func (c *Case) LoadCookies(path string) error {
	if err := c.requireTab(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("basecase: load cookies: %w", err)
	}
	var cookies []*proto.NetworkCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("basecase: load cookies: decode %s: %w", path, err)
	}
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, ck := range cookies {
		params = append(params, &proto.NetworkCookieParam{
			Name:     ck.Name,
			Value:    ck.Value,
			Domain:   ck.Domain,
			Path:     ck.Path,
			Secure:   ck.Secure,
			HTTPOnly: ck.HTTPOnly,
			SameSite: ck.SameSite,
			Expires:  ck.Expires,
		})
	}
	if err := c.tab.Page.Context(c.ctx).SetCookies(params); err != nil {
		return fmt.Errorf("basecase: load cookies: %w", err)
	}
	return nil
}
