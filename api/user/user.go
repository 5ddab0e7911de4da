// Package user handles WeChat login, the profile and the local session.
package user

import (
	"context"
	"fmt"

	"github.com/kbukum/mallkit/credential"
	"github.com/kbukum/mallkit/effect"
	"github.com/kbukum/mallkit/request"
)

const (
	pathWechatLogin = "/api/v1/wechat/login"
	pathProfile     = "/api/v1/user/profile"
)

// User is the backend user record.
type User struct {
	ID       int64  `json:"id"`
	OpenID   string `json:"open_id,omitempty"`
	NickName string `json:"nick_name"`
	Avatar   string `json:"avatar"`
	Gender   int    `json:"gender"`
	Phone    string `json:"phone,omitempty"`
}

// Profile is what WeChat reports about the user at login. All fields are
// optional.
type Profile struct {
	NickName  string
	AvatarURL string
	Gender    int
}

// LoginResult is the backend answer to a login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Service calls the user endpoints and keeps the session in credentials.
type Service struct {
	client *request.Client
	creds  *credential.Credentials
}

// New creates a user Service storing the session in creds.
func New(c *request.Client, creds *credential.Credentials) *Service {
	return &Service{client: c, creds: creds}
}

// WechatLogin exchanges a wx.login code for a session. When the backend
// returns a token, the token and user are stored.
func (s *Service) WechatLogin(ctx context.Context, code string, p Profile) (LoginResult, error) {
	res, err := request.PostAs[LoginResult](ctx, s.client, pathWechatLogin, map[string]any{
		"code":      code,
		"nick_name": p.NickName,
		"avatar":    p.AvatarURL,
		"gender":    p.Gender,
	})
	if err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return res, nil
	}

	if res.User != nil {
		err = s.creds.Save(ctx, res.Token, res.User)
	} else {
		err = s.creds.SetToken(ctx, res.Token)
	}
	if err != nil {
		return res, fmt.Errorf("user: store session: %w", err)
	}
	return res, nil
}

// Profile fetches the signed-in user's profile.
func (s *Service) Profile(ctx context.Context) (User, error) {
	return request.GetAs[User](ctx, s.client, pathProfile, nil)
}

// UpdateProfile saves profile changes and returns the updated user.
func (s *Service) UpdateProfile(ctx context.Context, u User) (User, error) {
	return request.PutAs[User](ctx, s.client, pathProfile, u)
}

// LoginStatus reports the stored session without calling the backend.
func (s *Service) LoginStatus(ctx context.Context) (credential.Status, error) {
	return s.creds.Status(ctx)
}

// Logout drops the stored session and sends the user to the login page.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("user: clear session: %w", err)
	}
	path := s.client.Config().LoginPath
	if path == "" {
		path = request.DefaultLoginPath
	}
	return s.client.RunEffects(ctx, effect.Redirect{Path: path})
}
