package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davral/siteworks/internal/service"
)

type vehicleRequest struct {
	Model               string `json:"model" binding:"required"`
	RegistrationNumber  string `json:"registrationNumber" binding:"required"`
	PollutionCertExpiry string `json:"pollutionCertExpiry"`
	FitnessCertExpiry   string `json:"fitnessCertExpiry"`
	AdditionalDetails   string `json:"additionalDetails"`
}

func (h *Handler) vehicleInput(c *gin.Context) (service.VehicleInput, bool) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return service.VehicleInput{}, false
	}
	pollution, err := optionalDate(req.PollutionCertExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pollutionCertExpiry"})
		return service.VehicleInput{}, false
	}
	fitness, err := optionalDate(req.FitnessCertExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fitnessCertExpiry"})
		return service.VehicleInput{}, false
	}
	return service.VehicleInput{
		Model:               req.Model,
		RegistrationNumber:  req.RegistrationNumber,
		PollutionCertExpiry: pollution,
		FitnessCertExpiry:   fitness,
		AdditionalDetails:   req.AdditionalDetails,
	}, true
}

func (h *Handler) createVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	input, ok := h.vehicleInput(c)
	if !ok {
		return
	}
	vehicle, err := h.fleet.CreateVehicle(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) listVehicles(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	vehicles, err := h.fleet.ListVehicles(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) getVehicle(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	vehicle, err := h.fleet.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) updateVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	input, ok := h.vehicleInput(c)
	if !ok {
		return
	}
	vehicle, err := h.fleet.UpdateVehicle(c.Request.Context(), principal, c.Param("id"), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.fleet.DeleteVehicle(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) vehicleCertificates(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	certificates, err := h.stats.VehicleCertificates(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, certificates)
}

type driverRequest struct {
	Name          string `json:"name" binding:"required"`
	LicenseNumber string `json:"licenseNumber" binding:"required"`
	LicenseType   string `json:"licenseType"`
	Experience    int    `json:"experience"`
	IsExternal    bool   `json:"isExternal"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

func driverInput(req driverRequest) service.DriverInput {
	return service.DriverInput{
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		LicenseType:   req.LicenseType,
		Experience:    req.Experience,
		IsExternal:    req.IsExternal,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
}

func (h *Handler) createDriver(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	driver, err := h.fleet.CreateDriver(c.Request.Context(), principal, driverInput(req))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (h *Handler) listDrivers(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	drivers, err := h.fleet.ListDrivers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) getDriver(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}
	driver, err := h.fleet.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) updateDriver(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	driver, err := h.fleet.UpdateDriver(c.Request.Context(), principal, c.Param("id"), driverInput(req))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) deleteDriver(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	if err := h.fleet.DeleteDriver(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
