package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"mediary/config"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// cashfreeAuthResponse represents the response from the Cashfree authorize API
type cashfreeAuthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

// cashfreeTransferResponse represents the response from the requestTransfer API
type cashfreeTransferResponse struct {
	Status  string `json:"status"`
	SubCode string `json:"subCode"`
	Message string `json:"message"`
	Data    struct {
		ReferenceID string `json:"referenceId"`
		UTR         string `json:"utr"`
	} `json:"data"`
}

// getCashfreeToken authenticates against the Cashfree payout API
func getCashfreeToken(client *resty.Client) (string, error) {
	resp, err := client.R().
		SetHeader("X-Client-Id", config.AppConfig.CashfreeClientID).
		SetHeader("X-Client-Secret", config.AppConfig.CashfreeClientSecret).
		Post(config.AppConfig.CashfreeBaseURL + "/payout/v1/authorize")
	if err != nil {
		log.Printf("[CASHFREE] auth request failed: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("[CASHFREE] auth failed: %s", resp.String())
		return "", fmt.Errorf("cashfree auth failed, code: %d", resp.StatusCode())
	}

	var authResp cashfreeAuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", fmt.Errorf("invalid cashfree auth response: %v", err)
	}
	if authResp.Status != "SUCCESS" {
		return "", fmt.Errorf("cashfree auth rejected: %s", authResp.Message)
	}
	return authResp.Data.Token, nil
}

// RequestCashfreeTransfer hands a payout to Cashfree and returns our transfer
// id. The beneficiary must already be registered with Cashfree under
// BENE_<userId> (done during vendor/doctor bank onboarding).
func RequestCashfreeTransfer(payoutID, userID uint, amount decimal.Decimal) (string, error) {
	client := resty.New()

	token, err := getCashfreeToken(client)
	if err != nil {
		return "", err
	}

	transferID := fmt.Sprintf("MEDIARY_PAYOUT_%d", payoutID)

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+token).
		SetBody(map[string]string{
			"beneId":     fmt.Sprintf("BENE_%d", userID),
			"amount":     amount.StringFixed(2),
			"transferId": transferID,
		}).
		Post(config.AppConfig.CashfreeBaseURL + "/payout/v1/requestTransfer")
	if err != nil {
		log.Printf("[CASHFREE] transfer request failed: %v", err)
		return transferID, err
	}

	var transferResp cashfreeTransferResponse
	if err := json.Unmarshal(resp.Body(), &transferResp); err != nil {
		return transferID, fmt.Errorf("invalid cashfree transfer response: %v", err)
	}
	if transferResp.Status != "SUCCESS" {
		log.Printf("[CASHFREE] transfer %s rejected: %s", transferID, transferResp.Message)
		return transferID, fmt.Errorf("cashfree transfer rejected: %s", transferResp.Message)
	}

	log.Printf("[CASHFREE] transfer %s accepted, referenceId=%s", transferID, transferResp.Data.ReferenceID)
	return transferID, nil
}
