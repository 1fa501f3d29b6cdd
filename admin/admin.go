// Package admin is the console surface: catalog writes, order management and
// admin-account creation. Every route here sits behind the AdminOnly guard
// (RootOnly for admin creation); the commerce API enforces the same rules
// again on its side.
package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"emporia/catalog"
	"emporia/globals"
	"emporia/models"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client. Set in main.
var Upstream *shopapi.Client

func tokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(globals.TokenKey).(string)
	return token
}

func respondUpstream(w http.ResponseWriter, env *shopapi.Envelope, err error, okMsg string) {
	if err != nil {
		code := http.StatusBadGateway
		if ae, ok := err.(*shopapi.APIError); ok {
			code = ae.StatusCode
		}
		utils.RespondWithError(w, code, shopapi.ResolveMessage(err))
		return
	}
	message := okMsg
	if env != nil && env.Message != "" {
		message = env.Message
	}
	utils.SendResponse(w, http.StatusOK, nil, message, nil)
}

func paramID(w http.ResponseWriter, ps httprouter.Params, name string) (int64, bool) {
	id, err := strconv.ParseInt(ps.ByName(name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// --- Categories ---

func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req shopapi.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Category name is required", http.StatusBadRequest)
		return
	}

	env, err := Upstream.CreateCategory(r.Context(), tokenFromContext(r), req)
	if err == nil {
		catalog.InvalidateCategoryCache()
	} else {
		log.Println("CreateCategory upstream error:", err)
	}
	respondUpstream(w, env, err, "Category created successfully")
}

func UpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "categoryid")
	if !ok {
		return
	}
	var req shopapi.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Category name is required", http.StatusBadRequest)
		return
	}

	env, err := Upstream.UpdateCategory(r.Context(), tokenFromContext(r), id, req)
	if err == nil {
		catalog.InvalidateCategoryCache()
	} else {
		log.Println("UpdateCategory upstream error:", err)
	}
	respondUpstream(w, env, err, "Category updated successfully")
}

func DeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "categoryid")
	if !ok {
		return
	}
	env, err := Upstream.DeleteCategory(r.Context(), tokenFromContext(r), id)
	if err == nil {
		catalog.InvalidateCategoryCache()
	} else {
		log.Println("DeleteCategory upstream error:", err)
	}
	respondUpstream(w, env, err, "Category deleted successfully")
}

// --- Products ---

// CreateProduct validates the catalog fields the console collects and
// forwards them as the commerce API's create payload.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req shopapi.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.CategoryID <= 0 || req.ImageURL == "" || req.Name == "" || req.Description == "" {
		http.Error(w, "All fields are mandatory", http.StatusBadRequest)
		return
	}
	if req.Price <= 0 || req.Mrp <= 0 || req.Qty <= 0 {
		http.Error(w, "Price, MRP and Quantity must be positive numbers", http.StatusBadRequest)
		return
	}
	// tags arrive as the console typed them; normalize and dedupe
	req.Tags = utils.SplitTags(strings.Join(req.Tags, ","))

	env, err := Upstream.CreateProduct(r.Context(), tokenFromContext(r), req)
	if err != nil {
		log.Println("CreateProduct upstream error:", err)
		respondUpstream(w, env, err, "")
		return
	}
	message := "Product created successfully"
	if env.Message != "" {
		message = env.Message
	}
	utils.SendResponse(w, http.StatusOK, map[string]int64{"productId": env.ProductID}, message, nil)
}

// UpdateProduct forwards the console's multipart form (fields plus tags[])
// to the commerce API unchanged.
func UpdateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	productID, err := strconv.ParseInt(r.URL.Query().Get("productId"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "Invalid productId", http.StatusBadRequest)
		return
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		http.Error(w, "Missing content type", http.StatusBadRequest)
		return
	}

	env, uerr := Upstream.UpdateProduct(r.Context(), tokenFromContext(r), productID, r.Body, contentType)
	if uerr != nil {
		log.Println("UpdateProduct upstream error:", uerr)
	}
	respondUpstream(w, env, uerr, "Product updated successfully")
}

func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "productid")
	if !ok {
		return
	}
	env, err := Upstream.DeleteProduct(r.Context(), tokenFromContext(r), id)
	if err != nil {
		log.Println("DeleteProduct upstream error:", err)
	}
	respondUpstream(w, env, err, "Product deleted successfully")
}

// AddProductImages attaches hosted image URLs to a product.
func AddProductImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "productid")
	if !ok {
		return
	}
	var payload struct {
		ImageURLs []string `json:"imageUrls"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if len(payload.ImageURLs) == 0 {
		http.Error(w, "imageUrls is required", http.StatusBadRequest)
		return
	}

	env, err := Upstream.AddProductImages(r.Context(), tokenFromContext(r), id, payload.ImageURLs)
	if err != nil {
		log.Println("AddProductImages upstream error:", err)
	}
	respondUpstream(w, env, err, "Images added successfully")
}

func DeleteProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	productID, ok := paramID(w, ps, "productid")
	if !ok {
		return
	}
	imageID, ok := paramID(w, ps, "imageid")
	if !ok {
		return
	}
	env, err := Upstream.DeleteProductImage(r.Context(), tokenFromContext(r), productID, imageID)
	if err != nil {
		log.Println("DeleteProductImage upstream error:", err)
	}
	respondUpstream(w, env, err, "Image deleted successfully")
}

// --- Admin accounts ---

// RegisterAdmin creates a new admin account. The route is RootOnly-guarded;
// password confirmation happens in the console before it reaches us.
func RegisterAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	env, err := Upstream.RegisterAdmin(r.Context(), tokenFromContext(r), req)
	if err != nil {
		log.Println("RegisterAdmin upstream error:", err)
	}
	respondUpstream(w, env, err, "Admin created successfully")
}
