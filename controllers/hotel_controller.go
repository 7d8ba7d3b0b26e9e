package controllers

import (
	"luxestay/dto"
	"luxestay/middleware"
	"luxestay/response"
	"luxestay/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) HotelController {
	return HotelController{hotels: hotels}
}

// parseSearchSpec đọc query string, số không hợp lệ bị bỏ qua
func parseSearchSpec(c *gin.Context) services.SearchSpec {
	return services.SearchSpec{
		City:      c.Query("city"),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		MinRating: queryFloat(c, "minRating", "rating"),
		Amenities: queryList(c, "amenities"),
		Featured:  queryBool(c, "featured"),
		Query:     firstQuery(c, "search", "query", "q"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 0),
	}
}

func (h HotelController) SearchHotels(c *gin.Context) {
	result, err := h.hotels.Search(c.Request.Context(), parseSearchSpec(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SearchResult(c, result.Items, result.Page, result.Pages, result.Total, result.Limit, result.Suggestions)
}

func (h HotelController) GetFeatured(c *gin.Context) {
	hotels, err := h.hotels.Featured(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotels)
}

func (h HotelController) GetHotel(c *gin.Context) {
	hotel, err := h.hotels.GetHotel(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

func (h HotelController) CreateHotel(c *gin.Context) {
	var req dto.CreateHotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := h.hotels.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Hotel created successfully", hotel)
}

func (h HotelController) AddReview(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := h.hotels.AddReview(c.Request.Context(), c.Param("id"), middleware.GetActor(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Review added successfully", hotel)
}

func (h HotelController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}

	var files []services.ImageFile
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			response.BadRequest(c, "Cannot read file "+header.Filename)
			return
		}
		defer f.Close()
		files = append(files, services.ImageFile{Name: header.Filename, Reader: f})
	}

	hotel, err := h.hotels.UploadImages(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Images uploaded successfully", hotel)
}

// ListAllHotels cho admin, gồm cả khách sạn ngừng hoạt động
func (h HotelController) ListAllHotels(c *gin.Context) {
	hotels, err := h.hotels.ListAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotels)
}

func (h HotelController) SearchRooms(c *gin.Context) {
	rooms, err := h.hotels.SearchRooms(c.Request.Context(), services.RoomQuery{
		Term:     firstQuery(c, "search", "q"),
		Type:     c.Query("type"),
		MaxPrice: queryFloat(c, "maxPrice"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}
