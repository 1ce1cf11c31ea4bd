package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/bassamadnan/mailbrief/config"
	"github.com/bassamadnan/mailbrief/message"
)

const (
	user         = "me"
	inboxLabel   = "INBOX"
	listPageSize = 100
	queryDate    = "2006/01/02"
)

var (
	// ErrAuth marks credential, token and permission failures.
	ErrAuth = errors.New("gmail authentication failed")
	// ErrNetwork marks every other failure talking to the API.
	ErrNetwork = errors.New("gmail request failed")
)

type Config struct {
	CredentialsFile string
	TokenFile       string
}

type Client struct {
	srv           *gmail.Service
	filterManager *config.Manager
	logger        *log.Logger
}

// NewClient loads the OAuth client secret, reuses a cached token or walks
// the user through the consent flow, and builds a read-only Gmail service.
func NewClient(ctx context.Context, cfg Config, cfgManager *config.Manager, logger *log.Logger) (*Client, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read client secret file: %w", ErrAuth, err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse client secret file to config: %w", ErrAuth, err)
	}
	httpClient, err := getOAuthClient(ctx, oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, err
	}
	return newClient(ctx, cfgManager, logger, option.WithHTTPClient(httpClient))
}

func newClient(ctx context.Context, cfgManager *config.Manager, logger *log.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = log.Default()
	}
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &Client{srv: srv, filterManager: cfgManager, logger: logger}, nil
}

func getOAuthClient(ctx context.Context, config *oauth2.Config, tokenFile string) (*http.Client, error) {
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenFile, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(ctx, tok), nil
}

func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)
	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		return nil, fmt.Errorf("%w: unable to read authorization code: %w", ErrAuth, err)
	}
	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to retrieve token from web: %w", ErrAuth, err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	fmt.Printf("Saving credential file to: %s\n", path)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Query is the search that selects unread inbox mail received on day.
func Query(day time.Time) string {
	return "is:unread after:" + day.Format(queryDate)
}

// FetchUnreadToday lists every unread inbox message from day onward and
// returns them fully loaded, in the order the API lists them. No messages
// is not an error.
func (c *Client) FetchUnreadToday(ctx context.Context, day time.Time) ([]*message.Raw, error) {
	query := Query(day)
	c.logger.Info("Listing messages", "query", query)

	var ids []string
	err := c.srv.Users.Messages.List(user).
		LabelIds(inboxLabel).
		Q(query).
		MaxResults(listPageSize).
		Pages(ctx, func(page *gmail.ListMessagesResponse) error {
			for _, m := range page.Messages {
				ids = append(ids, m.Id)
			}
			return nil
		})
	if err != nil {
		return nil, classify(fmt.Errorf("listing messages: %w", err))
	}
	if len(ids) == 0 {
		c.logger.Info("No messages matched", "query", query)
		return nil, nil
	}
	c.logger.Info("Fetched message list", "count", len(ids))

	msgs := make([]*message.Raw, 0, len(ids))
	for _, id := range ids {
		full, err := c.srv.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
		if err != nil {
			c.logger.Error("Unable to retrieve full message", "id", id, "err", err)
			return nil, classify(fmt.Errorf("getting message %s: %w", id, err))
		}
		raw := toRaw(full)
		if c.applyFilters(raw) {
			continue
		}
		msgs = append(msgs, raw)
	}
	return msgs, nil
}

func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) &&
		(apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// applyFilters reports whether the message matches an ignore rule.
func (c *Client) applyFilters(msg *message.Raw) bool {
	if c.filterManager == nil {
		return false
	}
	filters := c.filterManager.GetFilters()
	from := strings.ToLower(msg.HeaderOr("From", ""))
	for _, sender := range filters.IgnoreSenders {
		if sender != "" && strings.Contains(from, strings.ToLower(sender)) {
			c.logger.Info("Filtering email due to sender rule", "from", from, "rule", sender)
			return true
		}
	}
	subject := strings.ToLower(msg.HeaderOr("Subject", ""))
	for _, keyword := range filters.IgnoreKeywordsInSubject {
		if keyword != "" && strings.Contains(subject, strings.ToLower(keyword)) {
			c.logger.Info("Filtering email due to subject rule", "subject", subject, "rule", keyword)
			return true
		}
	}
	if len(filters.IgnoreKeywordsInBody) == 0 {
		return false
	}
	body := strings.ToLower(message.Extract(msg.Payload))
	for _, keyword := range filters.IgnoreKeywordsInBody {
		if keyword != "" && strings.Contains(body, strings.ToLower(keyword)) {
			c.logger.Info("Filtering email due to body rule", "id", msg.ID, "rule", keyword)
			return true
		}
	}
	return false
}
