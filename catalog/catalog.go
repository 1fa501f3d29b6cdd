package catalog

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"emporia/models"
	"emporia/rdx"
	"emporia/shopapi"
	"emporia/utils"

	"github.com/julienschmidt/httprouter"
)

// Upstream is the commerce API client. Set in main.
var Upstream *shopapi.Client

const categoryCacheKey = "cache:categories"
const categoryCacheTTL = 5 * time.Minute

// GetCategories serves the category list through a short-TTL Redis cache;
// the commerce API stays the source of truth.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if raw, err := rdx.RdxGet(categoryCacheKey); err == nil && raw != "" {
		var cached []models.Category
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"categoryList": cached})
			return
		}
	}

	categories, err := Upstream.Categories(r.Context())
	if err != nil {
		log.Println("GetCategories upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, shopapi.ResolveMessage(err))
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := rdx.SetWithExpiry(categoryCacheKey, string(data), categoryCacheTTL); err != nil {
			log.Println("GetCategories cache write error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categoryList": categories})
}

func GetCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "categoryid")
	if !ok {
		return
	}
	category, err := Upstream.CategoryByID(r.Context(), id)
	if err != nil || category == nil {
		log.Println("GetCategory upstream error:", err)
		utils.RespondWithError(w, http.StatusNotFound, shopapi.ResolveMessage(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"category": category})
}

func GetProductsByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "categoryid")
	if !ok {
		return
	}
	products, err := Upstream.ProductsByCategory(r.Context(), id)
	if err != nil {
		log.Println("GetProductsByCategory upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, shopapi.ResolveMessage(err))
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"productList": products})
}

func GetAllProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	products, err := Upstream.AllProducts(r.Context())
	if err != nil {
		log.Println("GetAllProducts upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, shopapi.ResolveMessage(err))
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"productList": products})
}

func SearchProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	searchValue := r.URL.Query().Get("searchValue")
	products, err := Upstream.SearchProducts(r.Context(), searchValue)
	if err != nil {
		log.Println("SearchProducts upstream error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, shopapi.ResolveMessage(err))
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"productList": products})
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "productid")
	if !ok {
		return
	}
	product, err := Upstream.ProductByID(r.Context(), id)
	if err != nil || product == nil {
		log.Println("GetProduct upstream error:", err)
		utils.RespondWithError(w, http.StatusNotFound, shopapi.ResolveMessage(err))
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"product": product})
}

// GetProductImages is an auxiliary fetch: failures degrade to an empty list
// instead of an error page, matching how the product carousel treats it.
func GetProductImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := paramID(w, ps, "productid")
	if !ok {
		return
	}
	images, err := Upstream.ProductImages(r.Context(), id)
	if err != nil {
		log.Println("GetProductImages upstream error (ignored):", err)
		images = []models.ProductImage{}
	}
	if images == nil {
		images = []models.ProductImage{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"data": images})
}

// InvalidateCategoryCache drops the cached category list after admin writes.
func InvalidateCategoryCache() {
	if err := rdx.RdxDel(categoryCacheKey); err != nil {
		log.Println("category cache invalidate error:", err)
	}
}

func paramID(w http.ResponseWriter, ps httprouter.Params, name string) (int64, bool) {
	id, err := strconv.ParseInt(ps.ByName(name), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
