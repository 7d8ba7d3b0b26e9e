package controllers

import (
	"luxestay/dto"
	"luxestay/middleware"
	"luxestay/repository"
	"luxestay/response"
	"luxestay/services"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) ContactController {
	return ContactController{contacts: contacts}
}

func (ct ContactController) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := ct.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, "Thank you for contacting us. We will get back to you soon.", gin.H{"id": contact.ID})
}

// List trả về danh sách liên hệ kèm thống kê theo status
func (ct ContactController) List(c *gin.Context) {
	filter := repository.ContactFilter{
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	filter.Page, filter.Limit = services.NormalizePaging(queryInt(c, "page", 1), queryInt(c, "limit", 0))

	res, total, err := ct.contacts.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, res, filter.Page, totalPages(total, filter.Limit), int(total), filter.Limit)
}

func (ct ContactController) Get(c *gin.Context) {
	contact, err := ct.contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, contact)
}

func (ct ContactController) UpdateStatus(c *gin.Context) {
	var req dto.ContactStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := ct.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Contact updated successfully", contact)
}

func (ct ContactController) Respond(c *gin.Context) {
	var req dto.ContactReplyRequest
	if !bindJSON(c, &req) {
		return
	}
	contact, err := ct.contacts.Respond(c.Request.Context(), c.Param("id"), middleware.GetActor(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, "Response saved successfully", contact)
}
