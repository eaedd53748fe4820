package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tryly/tryly-api/internal/database"
	"github.com/tryly/tryly-api/internal/middleware"
	"github.com/tryly/tryly-api/internal/models"
)

const proPriceBRL = 9.90

var billingClient = &http.Client{Timeout: 15 * time.Second}

type mpPreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type mpBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type mpPreferenceRequest struct {
	Items             []mpPreferenceItem `json:"items"`
	ExternalReference string             `json:"external_reference"`
	BackURLs          mpBackURLs         `json:"back_urls"`
	AutoReturn        string             `json:"auto_return"`
	NotificationURL   string             `json:"notification_url"`
}

type mpPreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type mpPayment struct {
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

// CreateCheckout creates a MercadoPago payment preference for the pro upgrade
// and returns the checkout URL
func CreateCheckout(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	accessToken := os.Getenv("MP_ACCESS_TOKEN")
	if accessToken == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Payments are not configured",
		})
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	if user.IsPro {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Account is already pro",
		})
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	pref := mpPreferenceRequest{
		Items: []mpPreferenceItem{{
			Title:      "Tryly Pro",
			Quantity:   1,
			UnitPrice:  proPriceBRL,
			CurrencyID: "BRL",
		}},
		ExternalReference: userID.String(),
		BackURLs: mpBackURLs{
			Success: baseURL + "/billing/success",
			Failure: baseURL + "/billing/failure",
			Pending: baseURL + "/billing/pending",
		},
		AutoReturn:      "approved",
		NotificationURL: baseURL + "/api/billing/webhook",
	}

	body, err := json.Marshal(pref)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create checkout",
		})
	}

	req, err := http.NewRequest(http.MethodPost,
		"https://api.mercadopago.com/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create checkout",
		})
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := billingClient.Do(req)
	if err != nil {
		log.Printf("MercadoPago preference request failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment provider unavailable",
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		log.Printf("MercadoPago preference request returned status %d", resp.StatusCode)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment provider unavailable",
		})
	}

	var prefResp mpPreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&prefResp); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Payment provider unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"preferenceId": prefResp.ID,
		"initPoint":    prefResp.InitPoint,
	})
}

// BillingWebhook handles MercadoPago payment notifications. Approved payments
// flip the referenced user to pro. The endpoint always returns 200 for events
// it does not act on so the provider stops retrying.
func BillingWebhook(c *fiber.Ctx) error {
	paymentID := c.Query("data.id")
	if paymentID == "" {
		var body struct {
			Data struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := c.BodyParser(&body); err == nil {
			paymentID = body.Data.ID
		}
	}
	if paymentID == "" {
		return c.SendStatus(fiber.StatusOK)
	}

	if c.Query("type") != "" && c.Query("type") != "payment" {
		return c.SendStatus(fiber.StatusOK)
	}

	payment, err := fetchPayment(paymentID)
	if err != nil {
		log.Printf("Failed to fetch payment %s: %v", paymentID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch payment",
		})
	}

	if payment.Status != "approved" {
		return c.SendStatus(fiber.StatusOK)
	}

	userID, err := uuid.Parse(payment.ExternalReference)
	if err != nil {
		log.Printf("Payment %s has invalid external reference %q", paymentID, payment.ExternalReference)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("is_pro", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to activate pro",
		})
	}

	log.Printf("Activated pro for user %s via payment %s", userID, paymentID)
	return c.SendStatus(fiber.StatusOK)
}

// fetchPayment looks up a payment on the MercadoPago API
func fetchPayment(paymentID string) (*mpPayment, error) {
	req, err := http.NewRequest(http.MethodGet,
		"https://api.mercadopago.com/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("MP_ACCESS_TOKEN"))

	resp, err := billingClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment lookup returned status %d", resp.StatusCode)
	}

	var payment mpPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
