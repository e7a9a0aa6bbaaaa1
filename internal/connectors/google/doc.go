// Package google provides shared infrastructure for the provider adapters.
//
// This package contains common utilities used by the drive, calendar, gmail,
// people and tasks adapters including:
//   - TokenSource adapter bridging the session's TokenProvider to oauth2.TokenSource
//   - Client and service factories for creating Google API clients
//   - Throttle, the single gate spacing every outbound call
//   - NormalizeError, mapping Google API failures to domain error kinds
//   - Batch, the multipart/mixed transport for multiplexed reads
//   - DiscoveryInitializer, the one-time API discovery check
//
// # Usage
//
// Each adapter builds its API service from one shared Client and wraps
// every request in Call:
//
//	client := google.NewClient(session, google.NewThrottle(200*time.Millisecond, nil), google.ClientOptions{})
//	svc, err := google.NewDriveService(ctx, client)
//	file, err := google.Call(ctx, client, "drive.files.get", func(ctx context.Context) (*drive.File, error) {
//		return svc.Files.Get(id).Context(ctx).Do()
//	})
//
// # OAuth2 Scopes
//
// The layer expects a credential carrying these read-only scopes:
//   - https://www.googleapis.com/auth/drive.readonly
//   - https://www.googleapis.com/auth/calendar.readonly
//   - https://www.googleapis.com/auth/gmail.readonly
//   - https://www.googleapis.com/auth/contacts.readonly
//   - https://www.googleapis.com/auth/tasks.readonly
//   - https://www.googleapis.com/auth/userinfo.profile
//   - https://www.googleapis.com/auth/user.emails.read
package google
