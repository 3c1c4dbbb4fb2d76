package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"bakbukBack/internal/models"
	"bakbukBack/internal/services"
)

type ListingHandler struct {
	Service *services.ListingService
}

func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20) // 32MB
	if err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	sellerID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Missing authenticated user", http.StatusUnauthorized)
		return
	}

	var listing models.Listing
	listing.SellerID = sellerID
	listing.Title = r.FormValue("title")
	listing.Description = r.FormValue("description")
	listing.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
	listing.Category = r.FormValue("category")
	listing.Location = r.FormValue("location")
	listing.ABV, _ = strconv.ParseFloat(r.FormValue("abv"), 64)
	listing.VolumeML, _ = strconv.Atoi(r.FormValue("volume_ml"))
	listing.Brand = r.FormValue("brand")
	listing.Vintage, _ = strconv.Atoi(r.FormValue("vintage"))
	listing.IsKosher, _ = strconv.ParseBool(r.FormValue("is_kosher"))

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read image", http.StatusInternalServerError)
		return
	}

	resp, err := h.Service.CreateListing(r.Context(), listing, image, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidImage):
			http.Error(w, "Image is missing or unreadable", http.StatusBadRequest)
		case errors.Is(err, models.ErrMissingTitle),
			errors.Is(err, models.ErrInvalidPrice),
			errors.Is(err, models.ErrInvalidCategory),
			errors.Is(err, models.ErrInvalidABV),
			errors.Is(err, models.ErrInvalidVolume):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("CreateListing error: %v", err)
			http.Error(w, "Failed to create listing", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *ListingHandler) GetListingByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	listing, err := h.Service.GetListingByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrListingNotFound) {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}
		log.Printf("GetListingByID error: %v", err)
		http.Error(w, "Failed to fetch listing", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listing)
}

func (h *ListingHandler) GetListingsBySellerID(w http.ResponseWriter, r *http.Request) {
	sellerID, err := strconv.Atoi(getParam(r, "user_id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	listings, err := h.Service.GetListingsBySellerID(r.Context(), sellerID)
	if err != nil {
		log.Printf("GetListingsBySellerID error: %v", err)
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listings)
}

func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	ownerID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Missing authenticated user", http.StatusUnauthorized)
		return
	}

	var listing models.Listing
	if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	listing.ID = id

	if err := h.Service.UpdateListing(r.Context(), listing, ownerID); err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			log.Printf("UpdateListing forbidden: listing %d, user %d", id, ownerID)
			http.Error(w, "Listing belongs to another seller", http.StatusForbidden)
		case errors.Is(err, models.ErrMissingTitle),
			errors.Is(err, models.ErrInvalidPrice),
			errors.Is(err, models.ErrInvalidCategory),
			errors.Is(err, models.ErrInvalidABV),
			errors.Is(err, models.ErrInvalidVolume):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("UpdateListing error: %v", err)
			http.Error(w, "Failed to update listing", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	ownerID, ok := currentUserID(r)
	if !ok {
		http.Error(w, "Missing authenticated user", http.StatusUnauthorized)
		return
	}

	if err := h.Service.DeleteListing(r.Context(), id, ownerID); err != nil {
		switch {
		case errors.Is(err, models.ErrListingNotFound):
			http.Error(w, "Listing not found", http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			log.Printf("DeleteListing forbidden: listing %d, user %d", id, ownerID)
			http.Error(w, "Listing belongs to another seller", http.StatusForbidden)
		default:
			log.Printf("DeleteListing error: %v", err)
			http.Error(w, "Failed to delete listing", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchListings handles the public GET search with query parameters.
func (h *ListingHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	filter := models.SearchFilterRequest{
		Category:  r.URL.Query().Get("category"),
		Search:    r.URL.Query().Get("search"),
		PriceFrom: parseFloatQuery(r, "price_from"),
		PriceTo:   parseFloatQuery(r, "price_to"),
		ABVFrom:   parseFloatQuery(r, "abv_from"),
		ABVTo:     parseFloatQuery(r, "abv_to"),
		MinRating: parseFloatQuery(r, "min_rating"),
		SortBy:    r.URL.Query().Get("sort_by"),
		Page:      parseIntQuery(r, "page"),
		Limit:     parseIntQuery(r, "limit"),
	}

	h.search(w, r, filter)
}

// SearchListingsPost accepts the same filter as a JSON body.
func (h *ListingHandler) SearchListingsPost(w http.ResponseWriter, r *http.Request) {
	var filter models.SearchFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.search(w, r, filter)
}

func (h *ListingHandler) search(w http.ResponseWriter, r *http.Request, filter models.SearchFilterRequest) {
	listings, err := h.Service.SearchListings(r.Context(), filter)
	if err != nil {
		log.Printf("SearchListings error: %v", err)
		http.Error(w, "Failed to fetch listings", http.StatusInternalServerError)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"listings": listings})
}
