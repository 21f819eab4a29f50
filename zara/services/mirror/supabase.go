package mirror

import (
	"context"
	"net/http"

	httputils "zara/zara/utils/http"
)

// SupabaseSink inserts rows through the PostgREST API of a Supabase project
// into the "users" and "messages" tables.
type SupabaseSink struct {
	baseURL string
	key     string
	client  *http.Client
}

func NewSupabaseSink(baseURL, key string, client *http.Client) *SupabaseSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseSink{baseURL: baseURL, key: key, client: client}
}

func (s *SupabaseSink) RecordRegistration(ctx context.Context, r Registration) error {
	return s.insert(ctx, "users", r)
}

func (s *SupabaseSink) RecordExchange(ctx context.Context, e Exchange) error {
	return s.insert(ctx, "messages", e)
}

func (s *SupabaseSink) insert(ctx context.Context, table string, row any) error {
	headers := map[string]string{
		"apikey":        s.key,
		"Authorization": "Bearer " + s.key,
		"Prefer":        "return=minimal",
	}
	return httputils.PostJSONWithHeaders(ctx, s.client, s.baseURL+"/rest/v1/"+table, headers, row, nil)
}
