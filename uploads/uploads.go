// Package uploads proxies admin image uploads to the external image host.
// The host stores the file and returns a hosted secure URL; nothing is kept
// locally.
package uploads

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

var hostClient = &http.Client{Timeout: 30 * time.Second}

func hostURL() string {
	return os.Getenv("IMAGE_HOST_URL")
}

func uploadPreset() string {
	return os.Getenv("IMAGE_UPLOAD_PRESET")
}

// UploadImage accepts a multipart image, validates its type and forwards it
// to the image host with the configured upload preset. Responds with the
// hosted URL.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if hostURL() == "" {
		http.Error(w, "Image host not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB limit
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Image file missing", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, handler) {
		return
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", handler.Filename)
	if err != nil {
		http.Error(w, "Failed to build upload", http.StatusInternalServerError)
		return
	}
	if _, err := io.Copy(part, file); err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}
	if preset := uploadPreset(); preset != "" {
		_ = form.WriteField("upload_preset", preset)
	}
	form.Close()

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, hostURL(), &body)
	if err != nil {
		http.Error(w, "Failed to build upload", http.StatusInternalServerError)
		return
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := hostClient.Do(req)
	if err != nil {
		log.Println("UploadImage host error:", err)
		http.Error(w, "Failed to upload image", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	var result struct {
		SecureURL string `json:"secure_url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || resp.StatusCode >= 400 || result.SecureURL == "" {
		msg := result.Error.Message
		if msg == "" {
			msg = "Failed to upload image"
		}
		log.Printf("UploadImage host status %d: %s", resp.StatusCode, msg)
		utils.RespondWithError(w, http.StatusBadGateway, msg)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"imageUrl": result.SecureURL})
}
