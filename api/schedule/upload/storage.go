package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"PharmalyticsSaas/api/constants"
)

// uploadToSupabase archives the original schedule file via the Supabase
// Storage REST API: PUT to /storage/v1/object/{bucket}/{path}.
func uploadToSupabase(ctx context.Context, fileBytes []byte, objectPath string) error {
	supaURL := os.Getenv("SUPABASE_URL")
	supaServiceKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	supaAnonKey := os.Getenv("SUPABASE_ANON_KEY")
	bucketName := os.Getenv("SUPABASE_BUCKET")

	// Trim accidental quoting from .env values (some loaders may leave quotes)
	supaURL = strings.Trim(supaURL, "\"")
	supaServiceKey = strings.Trim(supaServiceKey, "\"")
	supaAnonKey = strings.Trim(supaAnonKey, "\"")
	bucketName = strings.Trim(bucketName, "\"")

	if supaURL == "" || bucketName == "" || (supaServiceKey == "" && supaAnonKey == "") {
		return fmt.Errorf("supabase configuration missing; set SUPABASE_URL, SUPABASE_BUCKET and at least one of SUPABASE_SERVICE_ROLE_KEY or SUPABASE_ANON_KEY")
	}

	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(supaURL, "/"), bucketName, url.PathEscape(objectPath))
	req, err := http.NewRequestWithContext(ctx, "PUT", u, bytes.NewReader(fileBytes))
	if err != nil {
		return err
	}
	if supaServiceKey != "" {
		req.Header.Set("Authorization", "Bearer "+supaServiceKey)
		req.Header.Set("apikey", supaServiceKey)
	} else if supaAnonKey != "" {
		req.Header.Set("apikey", supaAnonKey)
	}
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(strings.ToLower(objectPath), ".xls") {
		contentType = "application/vnd.ms-excel"
	}
	req.Header.Set(constants.ContentTypeText, contentType)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("supabase upload failed: %d %s", resp.StatusCode, string(b))
}

func deleteFromSupabase(ctx context.Context, objectPath string) error {
	supaURL := strings.Trim(os.Getenv("SUPABASE_URL"), "\"")
	supaServiceKey := strings.Trim(os.Getenv("SUPABASE_SERVICE_ROLE_KEY"), "\"")
	bucketName := strings.Trim(os.Getenv("SUPABASE_BUCKET"), "\"")

	if supaURL == "" || bucketName == "" || supaServiceKey == "" {
		return fmt.Errorf("supabase not configured for delete")
	}

	u := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(supaURL, "/"), bucketName, url.PathEscape(objectPath))
	req, err := http.NewRequestWithContext(ctx, "DELETE", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+supaServiceKey)
	req.Header.Set("apikey", supaServiceKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("supabase delete failed: %d %s", resp.StatusCode, string(b))
}
