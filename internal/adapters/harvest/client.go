package harvest

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

	"github.com/chubberlisk/crypto-tech/internal/config"
	"github.com/chubberlisk/crypto-tech/internal/domain"
	"github.com/rs/zerolog"
)

const dateFormat = "2006-01-02"

// Client talks to the Harvest v2 REST API. Collection endpoints are server-paginated;
// every method resolves pagination fully before returning, so callers never see a
// partial record set.
type Client struct {
	baseURL   string
	token     string
	accountID string
	userAgent string
	http      *http.Client
	log       zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   cfg.HarvestBaseURL,
		token:     cfg.HarvestToken,
		accountID: cfg.HarvestAccountID,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.HTTPTimeout},
		log:       log,
	}
}

type userRecord struct {
	ID             int64    `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	IsActive       bool     `json:"is_active"`
	Roles          []string `json:"roles"`
	WeeklyCapacity int      `json:"weekly_capacity"`
}

type usersPage struct {
	Users      []userRecord `json:"users"`
	TotalPages *int         `json:"total_pages"`
}

type entryRecord struct {
	ID        int64   `json:"id"`
	SpentDate string  `json:"spent_date"`
	Hours     float64 `json:"hours"`
	IsClosed  bool    `json:"is_closed"`
	User      struct {
		ID int64 `json:"id"`
	} `json:"user"`
	Project struct {
		ID int64 `json:"id"`
	} `json:"project"`
}

type entriesPage struct {
	TimeEntries []entryRecord `json:"time_entries"`
	TotalPages  *int          `json:"total_pages"`
}

// ListPeople returns active people whose role set intersects roles. All pages are
// merged before the filter is applied.
func (c *Client) ListPeople(ctx context.Context, roles []string) ([]domain.Person, error) {
	var records []userRecord
	err := collectPages(func(page int) (*int, error) {
		var out usersPage
		if err := c.getJSON(ctx, "/v2/users", pageQuery(nil, page), &out); err != nil {
			return nil, err
		}
		records = append(records, out.Users...)
		return out.TotalPages, nil
	})
	if err != nil {
		return nil, &domain.RetrievalError{Resource: "harvest users", Err: err}
	}

	people := make([]domain.Person, 0, len(records))
	for _, r := range records {
		p := domain.Person{
			ID:             domain.PersonID(r.ID),
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			Email:          r.Email,
			IsActive:       r.IsActive,
			Roles:          r.Roles,
			WeeklyCapacity: r.WeeklyCapacity,
		}
		if p.IsActive && p.HasAnyRole(roles) {
			people = append(people, p)
		}
	}
	return people, nil
}

// ListTimeEntries returns every entry whose spent date falls in [from, to].
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	base := url.Values{}
	base.Set("from", from.Format(dateFormat))
	base.Set("to", to.Format(dateFormat))

	var records []entryRecord
	err := collectPages(func(page int) (*int, error) {
		var out entriesPage
		if err := c.getJSON(ctx, "/v2/time_entries", pageQuery(base, page), &out); err != nil {
			return nil, err
		}
		records = append(records, out.TimeEntries...)
		return out.TotalPages, nil
	})
	if err != nil {
		return nil, &domain.RetrievalError{Resource: "harvest time entries", Err: err}
	}

	entries := make([]domain.TimeEntry, 0, len(records))
	for _, r := range records {
		date, err := time.Parse(dateFormat, r.SpentDate)
		if err != nil {
			return nil, &domain.RetrievalError{Resource: "harvest time entries", Err: fmt.Errorf("spent_date %q: %w", r.SpentDate, err)}
		}
		entries = append(entries, domain.TimeEntry{
			ID:        r.ID,
			PersonID:  domain.PersonID(r.User.ID),
			SpentDate: date,
			Hours:     r.Hours,
			IsClosed:  r.IsClosed,
			ProjectID: r.Project.ID,
		})
	}
	return entries, nil
}

// collectPages drives a sequential page loop. fetch decodes one page and reports
// the total_pages metadata it carried; absent metadata fails the whole retrieval
// rather than assuming a single page.
func collectPages(fetch func(page int) (totalPages *int, err error)) error {
	total := 1
	for page := 1; page <= total; page++ {
		tp, err := fetch(page)
		if err != nil {
			return err
		}
		if tp == nil {
			return domain.ErrMissingPagination
		}
		total = *tp
	}
	return nil
}

func pageQuery(base url.Values, page int) url.Values {
	q := url.Values{}
	for k, vs := range base {
		q[k] = vs
	}
	q.Set("page", strconv.Itoa(page))
	return q
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if c.baseURL == "" {
		return errors.New("harvest: empty baseURL")
	}
	u := strings.TrimRight(c.baseURL, "/") + path
	if len(q) > 0 {
		u = u + "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Harvest-Account-Id", c.accountID)
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("harvest api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
