package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Identidad-api/pkg/config"
)

const (
	githubAuthURL   = "https://github.com/login/oauth/authorize"
	githubTokenURL  = "https://github.com/login/oauth/access_token"
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHubProvider implementa Provider contra la API de GitHub. GitHub oculta el
// email por defecto, por eso se pide el scope mínimo extra user:email y se
// consulta /user/emails cuando /user no lo trae.
type GitHubProvider struct {
	cfg        config.OAuthProviderConfig
	httpClient *http.Client

	authURL   string
	tokenURL  string
	userURL   string
	emailsURL string
}

// NewGitHubProvider construye el adaptador de GitHub.
func NewGitHubProvider(cfg config.OAuthProviderConfig) *GitHubProvider {
	return &GitHubProvider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		authURL:    githubAuthURL,
		tokenURL:   githubTokenURL,
		userURL:    githubUserURL,
		emailsURL:  githubEmailsURL,
	}
}

// Name implementa Provider.
func (p *GitHubProvider) Name() string { return ProviderGitHub }

// AuthCodeURL implementa Provider.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	params := url.Values{
		"client_id":    {p.cfg.ClientID},
		"redirect_uri": {p.cfg.CallbackURL},
		"scope":        {"read:user user:email"},
		"state":        {state},
	}
	return p.authURL + "?" + params.Encode()
}

// Exchange implementa Provider.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (string, error) {
	data := url.Values{
		"client_id":     {p.cfg.ClientID},
		"client_secret": {p.cfg.ClientSecret},
		"code":          {code},
		"redirect_uri":  {p.cfg.CallbackURL},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var tok struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("github: respuesta de token inválida: %w", err)
	}
	if resp.StatusCode != http.StatusOK || tok.AccessToken == "" {
		return "", fmt.Errorf("github: exchange falló (%d): %s", resp.StatusCode, tok.Error)
	}
	return tok.AccessToken, nil
}

// FetchProfile implementa Provider: /user y, si el email viene oculto,
// /user/emails eligiendo el primario verificado.
func (p *GitHubProvider) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := p.getJSON(ctx, p.userURL, accessToken, &user); err != nil {
		return nil, err
	}

	email := user.Email
	emailVerified := false
	if email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		// Tolerante: si /user/emails falla (scope recortado), el perfil queda
		// sin email y el caso de uso responde con el mensaje de error guiado.
		if err := p.getJSON(ctx, p.emailsURL, accessToken, &emails); err == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					email, emailVerified = e.Email, true
					break
				}
			}
			if email == "" {
				for _, e := range emails {
					if e.Verified {
						email, emailVerified = e.Email, true
						break
					}
				}
			}
		}
	} else {
		emailVerified = true // email público del perfil
	}

	first, last := SplitName(user.Name, user.Login)
	return &Profile{
		Provider:      ProviderGitHub,
		ProviderID:    strconv.FormatInt(user.ID, 10),
		Email:         email,
		EmailVerified: emailVerified,
		Name:          user.Name,
		FirstName:     first,
		LastName:      last,
		Username:      user.Login,
		AvatarURL:     user.AvatarURL,
	}, nil
}

func (p *GitHubProvider) getJSON(ctx context.Context, rawURL, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github: %s falló (%d)", rawURL, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
