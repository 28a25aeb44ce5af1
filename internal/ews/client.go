package ews

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Azure/go-ntlmssp"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/excel-azmin/roomcal/internal/instrumentation"
	"github.com/excel-azmin/roomcal/internal/logging"
)

// AuthType selects the authentication scheme negotiated with the server.
type AuthType string

// Supported authentication schemes.
const (
	// AuthNTLM negotiates NTLM, the default for on-premises Exchange.
	AuthNTLM AuthType = "ntlm"

	// AuthBasic sends the credential as HTTP basic auth.
	AuthBasic AuthType = "basic"

	// AuthOAuth2 runs the OAuth2 client-credentials flow against Azure AD
	// and is the only scheme Exchange Online still accepts.
	AuthOAuth2 AuthType = "oauth2"
)

// Credential holds a principal (DOMAIN\user or UPN) and its secret.
// It is immutable once constructed.
type Credential struct {
	Username string
	Password string
}

// String implements fmt.Stringer with the secret redacted so a Credential
// can never leak through formatted output.
func (c Credential) String() string {
	return c.Username + ":[redacted]"
}

// OAuthConfig holds the Azure AD application registration used by the
// client-credentials flow.
type OAuthConfig struct {
	ClientID     string
	TenantID     string
	ClientSecret string
}

// Config describes one client instance. It is passed at construction time;
// nothing in this package mutates process-wide state to change TLS or pool
// behavior for a single session.
type Config struct {
	// Host is the Exchange server hostname. The EWS endpoint is derived
	// as https://<Host>/EWS/Exchange.asmx unless Endpoint overrides it.
	Host string

	// Endpoint overrides the derived EWS URL. Mainly useful for tests.
	Endpoint string

	Credential Credential
	AuthType   AuthType
	OAuth      OAuthConfig

	// MaxConnections caps connections per host. Pooling itself stays
	// inside net/http; this is only a hint.
	MaxConnections int

	// InsecureTLS skips certificate verification for this client only.
	InsecureTLS bool

	// Timeout bounds each round trip. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout bounds a single EWS round trip.
const DefaultTimeout = 30 * time.Second

// verifyAttempts is the bounded attempt count for the initial access
// verification. Only transport-kind failures are retried.
const verifyAttempts = 3

func (cfg Config) endpoint() string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	return "https://" + cfg.Host + "/EWS/Exchange.asmx"
}

func (cfg Config) validate() error {
	if cfg.Host == "" && cfg.Endpoint == "" {
		return fmt.Errorf("host is required")
	}
	switch cfg.AuthType {
	case AuthNTLM, AuthBasic:
		if cfg.Credential.Username == "" || cfg.Credential.Password == "" {
			return fmt.Errorf("username and password are required for %s auth", cfg.AuthType)
		}
	case AuthOAuth2:
		if cfg.OAuth.ClientID == "" || cfg.OAuth.TenantID == "" || cfg.OAuth.ClientSecret == "" {
			return fmt.Errorf("client id, tenant id and client secret are required for oauth2 auth")
		}
	default:
		return fmt.Errorf("unsupported auth type %q", cfg.AuthType)
	}
	return nil
}

// Client issues EWS SOAP operations against one Exchange endpoint.
// A Client is safe to construct without network access; the first round
// trip happens in Verify or in the first operation.
type Client struct {
	httpClient *http.Client
	endpoint   string
	authType   AuthType
	credential Credential
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
}

// Option configures optional Client collaborators.
type Option func(*Client)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder. A nil recorder is a no-op.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a client from cfg. No network traffic is generated.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid ews config: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	// NTLM authenticates the connection, not the request, so HTTP/2
	// multiplexing must stay off.
	base := &http.Transport{
		MaxConnsPerHost:   cfg.MaxConnections,
		ForceAttemptHTTP2: false,
	}
	if cfg.InsecureTLS {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var httpClient *http.Client
	switch cfg.AuthType {
	case AuthNTLM:
		httpClient = &http.Client{
			Transport: ntlmssp.Negotiator{RoundTripper: base},
			Timeout:   timeout,
		}
	case AuthBasic:
		httpClient = &http.Client{Transport: base, Timeout: timeout}
	case AuthOAuth2:
		cc := clientcredentials.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.OAuth.TenantID),
			Scopes:       []string{"https://outlook.office365.com/.default"},
		}
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient,
			&http.Client{Transport: base, Timeout: timeout})
		httpClient = cc.Client(tokenCtx)
		httpClient.Timeout = timeout
	}

	c := &Client{
		httpClient: httpClient,
		endpoint:   cfg.endpoint(),
		authType:   cfg.AuthType,
		credential: cfg.Credential,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the EWS URL this client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func newEnvelope(impersonate string, body requestBody) requestEnvelope {
	env := requestEnvelope{
		NSSoapenv: nsSoap,
		NST:       nsTypes,
		NSM:       nsMessages,
		Header: requestHeader{
			RequestServerVersion: requestServerVersion{Version: serverVersion},
		},
		Body: body,
	}
	if impersonate != "" {
		env.Header.ExchangeImpersonation = &exchangeImpersonation{
			ConnectingSID: connectingSID{SmtpAddress: impersonate},
		}
	}
	return env
}

// do posts one SOAP envelope and returns the raw response body. Non-200
// responses are classified into the error taxonomy before returning.
func (c *Client) do(ctx context.Context, op, mailbox string, env requestEnvelope) ([]byte, error) {
	payload, err := xml.Marshal(env)
	if err != nil {
		return nil, &OpError{Op: op, Mailbox: mailbox, Kind: KindInvalidArgument,
			Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return nil, &OpError{Op: op, Mailbox: mailbox, Kind: KindInvalidArgument,
			Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	if c.authType == AuthNTLM || c.authType == AuthBasic {
		req.SetBasicAuth(c.credential.Username, c.credential.Password)
	}

	requestID := uuid.NewString()
	logger := c.logger.With(
		logging.Operation(op),
		slog.String(logging.KeyRequestID, requestID),
		logging.MailboxHash(mailbox),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(ctx, op, instrumentation.StatusError, time.Since(start))
		logger.Warn("ews request failed", logging.Err(err))
		return nil, &OpError{Op: op, Mailbox: mailbox, Kind: KindTransport,
			Err: fmt.Errorf("sending request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		c.metrics.RecordRequest(ctx, op, instrumentation.StatusError, duration)
		return nil, &OpError{Op: op, Mailbox: mailbox, Kind: KindTransport,
			Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordRequest(ctx, op, instrumentation.StatusError, duration)
		kind, cause := classifyHTTPFailure(resp.StatusCode, body)
		logger.Warn("ews request rejected",
			slog.Int("http_status", resp.StatusCode),
			logging.Status(kind.String()))
		return nil, &OpError{Op: op, Mailbox: mailbox, Kind: kind, Err: cause}
	}

	c.metrics.RecordRequest(ctx, op, instrumentation.StatusSuccess, duration)
	logger.Debug("ews request completed",
		logging.Duration(duration),
		logging.Status(instrumentation.StatusSuccess))
	return body, nil
}

// classifyHTTPFailure maps a non-200 response to an error kind. A SOAP
// fault in the body is authoritative; otherwise the HTTP status decides.
func classifyHTTPFailure(status int, body []byte) (Kind, error) {
	var env faultEnvelope
	if err := xml.Unmarshal(body, &env); err == nil && env.Body.Fault != nil {
		fault := env.Body.Fault
		kind := kindOfResponseCode(fault.Detail.ResponseCode)
		if kind == KindUnknown {
			kind = kindOfHTTPStatus(status)
		}
		return kind, fmt.Errorf("soap fault %s: %s", fault.FaultCode, fault.FaultString)
	}
	return kindOfHTTPStatus(status), fmt.Errorf("http status %d", status)
}

func kindOfHTTPStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusForbidden:
		return KindAccessDenied
	case status == http.StatusNotFound:
		return KindNotFound
	default:
		return KindTransport
	}
}

// responseError builds an OpError from an error-class response message, or
// returns nil for a success class.
func responseError(op, mailbox, class, code, text string) error {
	if class != "Error" {
		return nil
	}
	kind := kindOfResponseCode(code)
	return &OpError{Op: op, Mailbox: mailbox, Kind: kind,
		Err: fmt.Errorf("%s: %s", code, text)}
}

// Verify performs one GetFolder round trip against the mailbox's calendar
// folder, proving the credential and (when impersonate is set) the
// impersonation capability. Transport failures are retried up to
// verifyAttempts times; authentication and permission failures are not.
func (c *Client) Verify(ctx context.Context, mailbox, impersonate string) error {
	const op = "GetFolder"

	var lastErr error
	for attempt := 1; attempt <= verifyAttempts; attempt++ {
		lastErr = c.verifyOnce(ctx, op, mailbox, impersonate)
		if lastErr == nil {
			c.metrics.RecordAuthAttempt(ctx, instrumentation.StatusSuccess)
			return nil
		}
		c.metrics.RecordAuthAttempt(ctx, instrumentation.StatusError)
		if KindOf(lastErr) != KindTransport {
			return lastErr
		}
		c.logger.Warn("ews verification attempt failed",
			logging.Operation(op),
			slog.Int("attempt", attempt),
			logging.Err(lastErr))
	}
	return lastErr
}

func (c *Client) verifyOnce(ctx context.Context, op, mailbox, impersonate string) error {
	folder := distinguishedFolderID{ID: "calendar"}
	if mailbox != "" {
		folder.Mailbox = &folderMailbox{EmailAddress: mailbox}
	}
	env := newEnvelope(impersonate, requestBody{
		GetFolder: &getFolderRequest{
			FolderShape: folderShape{BaseShape: "IdOnly"},
			FolderIds:   folderIds{DistinguishedFolderID: folder},
		},
	})

	body, err := c.do(ctx, op, mailbox, env)
	if err != nil {
		return err
	}

	var resp getFolderResponseEnvelope
	if err := xml.Unmarshal(body, &resp); err != nil {
		return &OpError{Op: op, Mailbox: mailbox, Kind: KindTransport,
			Err: fmt.Errorf("unmarshaling response: %w", err)}
	}
	for _, msg := range resp.Body.GetFolderResponse.ResponseMessages.Messages {
		if err := responseError(op, mailbox, msg.ResponseClass, msg.ResponseCode, msg.MessageText); err != nil {
			return err
		}
	}
	return nil
}

// FindQuery describes one calendar window query.
type FindQuery struct {
	// Mailbox addresses the calendar folder to search. Empty means the
	// authenticated principal's own calendar.
	Mailbox string

	// Impersonate, when set, runs the request in the security context of
	// that SMTP address via the ExchangeImpersonation header.
	Impersonate string

	Start time.Time
	End   time.Time

	// MaxEntries caps the view; zero leaves the server default in place.
	MaxEntries int
}

// calendarFields is the item shape requested for calendar views.
var calendarFields = []string{
	"item:Subject",
	"item:Body",
	"item:Categories",
	"calendar:Start",
	"calendar:End",
	"calendar:IsAllDayEvent",
	"calendar:IsCancelled",
	"calendar:IsRecurring",
	"calendar:Location",
	"calendar:Organizer",
	"calendar:RequiredAttendees",
	"calendar:OptionalAttendees",
	"calendar:Resources",
}

// FindCalendarItems runs FindItem with a CalendarView over [q.Start, q.End)
// and returns the wire-level items in server order.
func (c *Client) FindCalendarItems(ctx context.Context, q FindQuery) ([]CalendarItem, error) {
	const op = "FindItem"

	fields := make([]fieldURI, len(calendarFields))
	for i, f := range calendarFields {
		fields[i] = fieldURI{FieldURI: f}
	}
	folder := distinguishedFolderID{ID: "calendar"}
	if q.Mailbox != "" {
		folder.Mailbox = &folderMailbox{EmailAddress: q.Mailbox}
	}
	env := newEnvelope(q.Impersonate, requestBody{
		FindItem: &findItemRequest{
			Traversal: "Shallow",
			ItemShape: itemShape{
				BaseShape:            "IdOnly",
				AdditionalProperties: &additionalProperties{FieldURIs: fields},
			},
			CalendarView: calendarView{
				MaxEntriesReturned: q.MaxEntries,
				StartDate:          q.Start.UTC().Format(time.RFC3339),
				EndDate:            q.End.UTC().Format(time.RFC3339),
			},
			ParentFolderIds: parentFolderIds{DistinguishedFolderID: folder},
		},
	})

	body, err := c.do(ctx, op, q.Mailbox, env)
	if err != nil {
		return nil, err
	}

	var resp findItemResponseEnvelope
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, &OpError{Op: op, Mailbox: q.Mailbox, Kind: KindTransport,
			Err: fmt.Errorf("unmarshaling response: %w", err)}
	}

	var items []CalendarItem
	for _, msg := range resp.Body.FindItemResponse.ResponseMessages.Messages {
		if err := responseError(op, q.Mailbox, msg.ResponseClass, msg.ResponseCode, msg.MessageText); err != nil {
			return nil, err
		}
		items = append(items, msg.RootFolder.Items.CalendarItems...)
	}
	return items, nil
}

// NewCalendarItem describes a calendar item to create. Attendee slices keep
// caller order on the wire.
type NewCalendarItem struct {
	// Mailbox receives the item; empty targets the authenticated
	// principal's calendar.
	Mailbox string

	// Impersonate runs the create in another principal's context.
	Impersonate string

	Subject    string
	Body       string
	BodyType   string // "Text" or "HTML"; empty defaults to "Text"
	Categories []string
	Start      time.Time
	End        time.Time
	AllDay     bool
	Location   string

	Required  []string
	Optional  []string
	Resources []string
}

func toAttendeeList(addresses []string) *attendeeList {
	if len(addresses) == 0 {
		return nil
	}
	list := &attendeeList{Attendees: make([]requestAttendee, len(addresses))}
	for i, addr := range addresses {
		list.Attendees[i] = requestAttendee{Mailbox: requestMailbox{EmailAddress: addr}}
	}
	return list
}

// CreateCalendarItem persists one calendar item remotely, sending meeting
// invitations to all attendees, and returns its id and change key. One
// attempt only; the caller decides what a failure means.
func (c *Client) CreateCalendarItem(ctx context.Context, item NewCalendarItem) (ItemID, error) {
	const op = "CreateItem"

	var itemBody *requestItemBody
	if item.Body != "" {
		bodyType := item.BodyType
		if bodyType == "" {
			bodyType = "Text"
		}
		itemBody = &requestItemBody{BodyType: bodyType, Content: item.Body}
	}
	var categories *requestStrings
	if len(item.Categories) > 0 {
		categories = &requestStrings{Strings: item.Categories}
	}

	folder := distinguishedFolderID{ID: "calendar"}
	if item.Mailbox != "" {
		folder.Mailbox = &folderMailbox{EmailAddress: item.Mailbox}
	}

	env := newEnvelope(item.Impersonate, requestBody{
		CreateItem: &createItemRequest{
			SendMeetingInvitations: "SendToAllAndSaveCopy",
			SavedItemFolderID:      &savedItemFolderID{DistinguishedFolderID: folder},
			Items: createItems{
				CalendarItem: calendarItemRequest{
					Subject:              item.Subject,
					Body:                 itemBody,
					Categories:           categories,
					Start:                item.Start.UTC().Format(time.RFC3339),
					End:                  item.End.UTC().Format(time.RFC3339),
					IsAllDayEvent:        item.AllDay,
					LegacyFreeBusyStatus: "Busy",
					Location:             item.Location,
					RequiredAttendees:    toAttendeeList(item.Required),
					OptionalAttendees:    toAttendeeList(item.Optional),
					Resources:            toAttendeeList(item.Resources),
				},
			},
		},
	})

	body, err := c.do(ctx, op, item.Mailbox, env)
	if err != nil {
		return ItemID{}, err
	}

	var resp createItemResponseEnvelope
	if err := xml.Unmarshal(body, &resp); err != nil {
		return ItemID{}, &OpError{Op: op, Mailbox: item.Mailbox, Kind: KindTransport,
			Err: fmt.Errorf("unmarshaling response: %w", err)}
	}

	for _, msg := range resp.Body.CreateItemResponse.ResponseMessages.Messages {
		if err := responseError(op, item.Mailbox, msg.ResponseClass, msg.ResponseCode, msg.MessageText); err != nil {
			return ItemID{}, err
		}
		if len(msg.Items.CalendarItems) > 0 {
			return msg.Items.CalendarItems[0].ItemID, nil
		}
	}
	return ItemID{}, &OpError{Op: op, Mailbox: item.Mailbox, Kind: KindUnknown,
		Err: fmt.Errorf("response contained no created item")}
}
