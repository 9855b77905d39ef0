// Package identity resolves user profiles through the user API.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/codelab/api-financeiro/internal/apperrors"
	"github.com/codelab/api-financeiro/internal/core/domain"
	portssvc "github.com/codelab/api-financeiro/internal/core/ports/services"
)

// HTTPResolver looks users up with a GET against the user API. The API
// answers the id == 0 sentinel profile for unknown users; that is returned
// as-is, since distinguishing it is the export pipeline's job.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver creates a resolver against baseURL, e.g.
// "http://usuario-api:3004/api/v1/usuario".
func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.UserResolver = (*HTTPResolver)(nil)

// FindByID fetches one user profile. Every transport or decoding failure
// surfaces as apperrors.ErrRemoteCommunication.
func (r *HTTPResolver) FindByID(ctx context.Context, id int64) (domain.User, error) {
	url := fmt.Sprintf("%s/%d", r.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: failed to build request: %v", apperrors.ErrRemoteCommunication, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteCommunication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.User{}, fmt.Errorf("%w: user api answered status %d", apperrors.ErrRemoteCommunication, resp.StatusCode)
	}

	var payload struct {
		Data domain.User `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.User{}, fmt.Errorf("%w: failed to decode user payload: %v", apperrors.ErrRemoteCommunication, err)
	}

	return payload.Data, nil
}
