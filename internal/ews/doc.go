// Package ews implements the SOAP transport layer for Exchange Web Services.
//
// The package owns everything wire-level: envelope construction with
// encoding/xml, authentication (NTLM via go-ntlmssp, HTTP basic, or the
// OAuth2 client-credentials flow for Exchange Online), and the translation
// of HTTP statuses, SOAP faults and EWS response codes into one error
// taxonomy (see Kind). Higher layers never see raw XML or response codes.
//
// A Client is configured per instance; nothing here touches process-global
// state. Example:
//
//	client, err := ews.NewClient(ews.Config{
//	    Host:       "mail.example.com",
//	    Credential: ews.Credential{Username: `EXAMPLE\svc-rooms`, Password: secret},
//	    AuthType:   ews.AuthNTLM,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Verify(ctx, "", ""); err != nil {
//	    log.Fatal(err)
//	}
package ews
