package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"porchlite-server/pkg/logger"
)

// Image hosting via Cloudinary's signed upload API. Configured with
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET and an
// optional CLOUDINARY_FOLDER. Property headers, task photos and guest-book
// photos all go through here and are referenced by public URL afterwards.

func cloudinarySignature(publicID, timestamp, apiSecret string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(payload)))
}

// UploadBase64Image uploads a base64 data URL (or bare payload) and returns
// the hosted URL, or "" on failure.
func UploadBase64Image(base64ImageSrc string, publicID string) string {
	if base64ImageSrc == "" {
		logger.Log.Error("image upload called with empty payload")
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		logger.Log.Error("missing Cloudinary env vars")
		return ""
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)
	form.Add("public_id", finalPublicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", cloudinarySignature(finalPublicID, timestamp, apiSecret))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logger.Log.WithError(err).Error("failed to build upload request")
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Log.WithError(err).Error("image upload request failed")
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		logger.Log.WithError(err).Error("failed to read upload response")
		return ""
	}

	if res.StatusCode != http.StatusOK {
		logger.Log.WithField("status", res.StatusCode).Errorf("image upload rejected: %s", string(body))
		return ""
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		logger.Log.WithError(err).Error("failed to parse upload response")
		return ""
	}
	if cloudRes.Error.Message != "" {
		logger.Log.Error("image host error: " + cloudRes.Error.Message)
		return ""
	}

	out := cloudRes.SecureURL
	if out == "" {
		out = cloudRes.URL
	}
	return out
}

// DeleteImage removes a previously uploaded image by its hosted URL.
// Best effort; returns false and logs on any failure.
func DeleteImage(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return false
	}
	lastPart := parts[len(parts)-1]
	publicID := strings.Split(lastPart, ".")[0]

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		logger.Log.Error("missing Cloudinary env vars")
		return false
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", cloudinarySignature(finalPublicID, timestamp, apiSecret))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Log.WithError(err).Error("image delete request failed")
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		logger.Log.WithField("status", res.StatusCode).Error("image delete rejected")
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return false
	}
	return deleteRes.Result == "ok"
}
