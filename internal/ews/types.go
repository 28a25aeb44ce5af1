package ews

import "encoding/xml"

// Namespace constants for the EWS SOAP envelope.
const (
	nsSoap     = "http://schemas.xmlsoap.org/soap/envelope/"
	nsTypes    = "http://schemas.microsoft.com/exchange/services/2006/types"
	nsMessages = "http://schemas.microsoft.com/exchange/services/2006/messages"

	// serverVersion is the schema version requested from the server.
	// Exchange2013_SP1 is the floor for the CalendarView fields used here.
	serverVersion = "Exchange2013_SP1"
)

// --- Request envelopes ---
//
// Requests are marshaled with explicit namespace prefixes in the field tags
// because encoding/xml has no native prefix support. The prefixes are bound
// on the envelope element.

type requestEnvelope struct {
	XMLName   xml.Name      `xml:"soapenv:Envelope"`
	NSSoapenv string        `xml:"xmlns:soapenv,attr"`
	NST       string        `xml:"xmlns:t,attr"`
	NSM       string        `xml:"xmlns:m,attr"`
	Header    requestHeader `xml:"soapenv:Header"`
	Body      requestBody   `xml:"soapenv:Body"`
}

type requestHeader struct {
	RequestServerVersion  requestServerVersion   `xml:"t:RequestServerVersion"`
	ExchangeImpersonation *exchangeImpersonation `xml:"t:ExchangeImpersonation,omitempty"`
}

type requestServerVersion struct {
	Version string `xml:"Version,attr"`
}

// exchangeImpersonation carries the SOAP header that makes the request run
// in the security context of another mailbox owner.
type exchangeImpersonation struct {
	ConnectingSID connectingSID `xml:"t:ConnectingSID"`
}

type connectingSID struct {
	SmtpAddress string `xml:"t:SmtpAddress"`
}

type requestBody struct {
	GetFolder  *getFolderRequest  `xml:"m:GetFolder,omitempty"`
	FindItem   *findItemRequest   `xml:"m:FindItem,omitempty"`
	CreateItem *createItemRequest `xml:"m:CreateItem,omitempty"`
}

type getFolderRequest struct {
	FolderShape folderShape `xml:"m:FolderShape"`
	FolderIds   folderIds   `xml:"m:FolderIds"`
}

type folderShape struct {
	BaseShape string `xml:"t:BaseShape"`
}

type folderIds struct {
	DistinguishedFolderID distinguishedFolderID `xml:"t:DistinguishedFolderId"`
}

type distinguishedFolderID struct {
	ID      string         `xml:"Id,attr"`
	Mailbox *folderMailbox `xml:"t:Mailbox,omitempty"`
}

type folderMailbox struct {
	EmailAddress string `xml:"t:EmailAddress"`
}

type findItemRequest struct {
	Traversal       string          `xml:"Traversal,attr"`
	ItemShape       itemShape       `xml:"m:ItemShape"`
	CalendarView    calendarView    `xml:"m:CalendarView"`
	ParentFolderIds parentFolderIds `xml:"m:ParentFolderIds"`
}

type itemShape struct {
	BaseShape            string                `xml:"t:BaseShape"`
	AdditionalProperties *additionalProperties `xml:"t:AdditionalProperties,omitempty"`
}

type additionalProperties struct {
	FieldURIs []fieldURI `xml:"t:FieldURI"`
}

type fieldURI struct {
	FieldURI string `xml:"FieldURI,attr"`
}

type calendarView struct {
	MaxEntriesReturned int    `xml:"MaxEntriesReturned,attr,omitempty"`
	StartDate          string `xml:"StartDate,attr"`
	EndDate            string `xml:"EndDate,attr"`
}

type parentFolderIds struct {
	DistinguishedFolderID distinguishedFolderID `xml:"t:DistinguishedFolderId"`
}

type createItemRequest struct {
	SendMeetingInvitations string             `xml:"SendMeetingInvitations,attr"`
	SavedItemFolderID      *savedItemFolderID `xml:"m:SavedItemFolderId,omitempty"`
	Items                  createItems        `xml:"m:Items"`
}

type savedItemFolderID struct {
	DistinguishedFolderID distinguishedFolderID `xml:"t:DistinguishedFolderId"`
}

type createItems struct {
	CalendarItem calendarItemRequest `xml:"t:CalendarItem"`
}

// calendarItemRequest mirrors the schema order of t:CalendarItem; Exchange
// rejects out-of-order child elements.
type calendarItemRequest struct {
	Subject              string           `xml:"t:Subject"`
	Body                 *requestItemBody `xml:"t:Body,omitempty"`
	Categories           *requestStrings  `xml:"t:Categories,omitempty"`
	Start                string           `xml:"t:Start"`
	End                  string           `xml:"t:End"`
	IsAllDayEvent        bool             `xml:"t:IsAllDayEvent"`
	LegacyFreeBusyStatus string           `xml:"t:LegacyFreeBusyStatus"`
	Location             string           `xml:"t:Location,omitempty"`
	RequiredAttendees    *attendeeList    `xml:"t:RequiredAttendees,omitempty"`
	OptionalAttendees    *attendeeList    `xml:"t:OptionalAttendees,omitempty"`
	Resources            *attendeeList    `xml:"t:Resources,omitempty"`
}

type requestItemBody struct {
	BodyType string `xml:"BodyType,attr"`
	Content  string `xml:",chardata"`
}

type requestStrings struct {
	Strings []string `xml:"t:String"`
}

type attendeeList struct {
	Attendees []requestAttendee `xml:"t:Attendee"`
}

type requestAttendee struct {
	Mailbox requestMailbox `xml:"t:Mailbox"`
}

type requestMailbox struct {
	EmailAddress string `xml:"t:EmailAddress"`
}

// --- Response envelopes ---
//
// Responses are unmarshaled by local element name; encoding/xml does not
// require the prefixes the server happens to use.

// ItemID identifies a remote item together with its change token.
type ItemID struct {
	ID        string `xml:"Id,attr"`
	ChangeKey string `xml:"ChangeKey,attr"`
}

// Mailbox is the wire representation of a mail recipient.
type Mailbox struct {
	Name         string `xml:"Name"`
	EmailAddress string `xml:"EmailAddress"`
	RoutingType  string `xml:"RoutingType"`
	MailboxType  string `xml:"MailboxType"`
}

// Organizer wraps the organizer mailbox of a calendar item.
type Organizer struct {
	Mailbox Mailbox `xml:"Mailbox"`
}

// Attendee is one entry of an attendee collection.
type Attendee struct {
	Mailbox      Mailbox `xml:"Mailbox"`
	ResponseType string  `xml:"ResponseType"`
}

// AttendeeSet is an ordered attendee collection.
type AttendeeSet struct {
	Attendees []Attendee `xml:"Attendee"`
}

// ItemBody is the body of a calendar item with its content type attribute.
type ItemBody struct {
	BodyType string `xml:"BodyType,attr"`
	Content  string `xml:",chardata"`
}

// CalendarItem is the wire-level calendar item as returned by FindItem.
// Timestamps stay strings here; the translation layer parses them.
type CalendarItem struct {
	ItemID               ItemID      `xml:"ItemId"`
	Subject              string      `xml:"Subject"`
	Start                string      `xml:"Start"`
	End                  string      `xml:"End"`
	IsAllDayEvent        bool        `xml:"IsAllDayEvent"`
	IsCancelled          bool        `xml:"IsCancelled"`
	IsRecurring          bool        `xml:"IsRecurring"`
	LegacyFreeBusyStatus string      `xml:"LegacyFreeBusyStatus"`
	Location             string      `xml:"Location"`
	Body                 ItemBody    `xml:"Body"`
	Categories           []string    `xml:"Categories>String"`
	Organizer            Organizer   `xml:"Organizer"`
	RequiredAttendees    AttendeeSet `xml:"RequiredAttendees"`
	OptionalAttendees    AttendeeSet `xml:"OptionalAttendees"`
	Resources            AttendeeSet `xml:"Resources"`
}

type findItemResponseEnvelope struct {
	XMLName xml.Name             `xml:"Envelope"`
	Body    findItemResponseBody `xml:"Body"`
}

type findItemResponseBody struct {
	FindItemResponse findItemResponse `xml:"FindItemResponse"`
	Fault            *soapFault       `xml:"Fault"`
}

type findItemResponse struct {
	ResponseMessages struct {
		Messages []findItemResponseMessage `xml:"FindItemResponseMessage"`
	} `xml:"ResponseMessages"`
}

type findItemResponseMessage struct {
	ResponseClass string         `xml:"ResponseClass,attr"`
	ResponseCode  string         `xml:"ResponseCode"`
	MessageText   string         `xml:"MessageText"`
	RootFolder    rootFolderInfo `xml:"RootFolder"`
}

type rootFolderInfo struct {
	TotalItemsInView        int  `xml:"TotalItemsInView,attr"`
	IncludesLastItemInRange bool `xml:"IncludesLastItemInRange,attr"`
	Items                   struct {
		CalendarItems []CalendarItem `xml:"CalendarItem"`
	} `xml:"Items"`
}

type createItemResponseEnvelope struct {
	XMLName xml.Name               `xml:"Envelope"`
	Body    createItemResponseBody `xml:"Body"`
}

type createItemResponseBody struct {
	CreateItemResponse createItemResponse `xml:"CreateItemResponse"`
	Fault              *soapFault         `xml:"Fault"`
}

type createItemResponse struct {
	ResponseMessages struct {
		Messages []createItemResponseMessage `xml:"CreateItemResponseMessage"`
	} `xml:"ResponseMessages"`
}

type createItemResponseMessage struct {
	ResponseClass string `xml:"ResponseClass,attr"`
	ResponseCode  string `xml:"ResponseCode"`
	MessageText   string `xml:"MessageText"`
	Items         struct {
		CalendarItems []struct {
			ItemID ItemID `xml:"ItemId"`
		} `xml:"CalendarItem"`
	} `xml:"Items"`
}

type getFolderResponseEnvelope struct {
	XMLName xml.Name              `xml:"Envelope"`
	Body    getFolderResponseBody `xml:"Body"`
}

type getFolderResponseBody struct {
	GetFolderResponse getFolderResponse `xml:"GetFolderResponse"`
	Fault             *soapFault        `xml:"Fault"`
}

type getFolderResponse struct {
	ResponseMessages struct {
		Messages []getFolderResponseMessage `xml:"GetFolderResponseMessage"`
	} `xml:"ResponseMessages"`
}

type getFolderResponseMessage struct {
	ResponseClass string `xml:"ResponseClass,attr"`
	ResponseCode  string `xml:"ResponseCode"`
	MessageText   string `xml:"MessageText"`
}

// soapFault is the envelope-level fault Exchange returns for requests that
// fail before reaching operation dispatch (schema violations, denied
// impersonation on some server versions).
type soapFault struct {
	FaultCode   string `xml:"faultcode"`
	FaultString string `xml:"faultstring"`
	Detail      struct {
		ResponseCode string `xml:"ResponseCode"`
	} `xml:"detail"`
}

type faultEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault *soapFault `xml:"Fault"`
	} `xml:"Body"`
}
