// Package kobis provides a client for the KOBIS (Korean Film Council) open API.
//
// The client wraps the four endpoints used for browsing Korean cinema data:
// daily box office, weekly/weekend box office, catalog search and movie
// detail. Every request carries the service access key as the "key" query
// parameter and is bounded by a fixed timeout.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := kobis.NewClient("your-api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	entries, err := client.DailyBoxOffice(ctx, kobis.Yesterday(time.Now()))
//
//	result, err := client.SearchMovies(ctx, kobis.SearchQuery{MovieName: "고질라"})
//
// # Error Handling
//
// Failures are classified with errors.Is:
//
//   - ErrNetwork: no response was obtained (see NetworkError)
//   - ErrTimeout: no response within the deadline
//   - ErrRequestFailed: non-2xx status, malformed body or a faultInfo
//     envelope (see RequestFailedError)
//   - ErrNotFound: the detail endpoint returned an empty record
//
// A provider response that omits a ranking or search list is not a failure;
// it resolves to an empty slice.
package kobis
