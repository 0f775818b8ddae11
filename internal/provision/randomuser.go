package provision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fake-auth/internal/identifier"
	"fake-auth/internal/models"
)

const defaultRequestTimeout = 15 * time.Second

var ErrUpstream = errors.New("fixture service request failed")

type randomUserResponse struct {
	Results []randomUser `json:"results"`
}

type randomUser struct {
	Login struct {
		Username string `json:"username"`
	} `json:"login"`
	Email string `json:"email"`
	Name  struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Picture struct {
		Medium string `json:"medium"`
	} `json:"picture"`
}

// RandomUserClient fetches fake profiles from a randomuser.me compatible API.
type RandomUserClient struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

func NewRandomUserClient(baseURL string, timeout time.Duration) *RandomUserClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &RandomUserClient{
		url:     baseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchUsers requests count profiles and assigns each a fresh random id.
func (c *RandomUserClient) FetchUsers(ctx context.Context, count int) ([]models.User, error) {
	endpoint, err := url.Parse(strings.TrimSpace(c.url))
	if err != nil || endpoint.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", ErrUpstream, c.url)
	}
	q := endpoint.Query()
	q.Set("results", strconv.Itoa(count))
	endpoint.RawQuery = q.Encode()

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload randomUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: empty result set", ErrUpstream)
	}

	users := make([]models.User, 0, len(payload.Results))
	for _, ru := range payload.Results {
		id, err := identifier.NewUserID()
		if err != nil {
			return nil, err
		}
		users = append(users, models.User{
			ID:              id,
			Username:        ru.Login.Username,
			Email:           ru.Email,
			Name:            ru.Name.First + " " + ru.Name.Last,
			ProfileImageURL: ru.Picture.Medium,
		})
	}

	return users, nil
}
