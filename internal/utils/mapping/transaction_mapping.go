package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/aromex/aromex_backend/internal/core/domain"
	"github.com/aromex/aromex_backend/internal/models"
)

// ToModelTransaction converts a domain transaction to its database model, serializing
// the balance snapshot to JSON.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	var balancesJSON []byte
	if d.BalancesAfter != nil {
		var err error
		balancesJSON, err = json.Marshal(d.BalancesAfter)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to marshal balance snapshot: %w", err)
		}
	}
	return models.Transaction{
		TransactionID:     d.TransactionID,
		Timestamp:         d.Timestamp,
		GiverID:           d.GiverID,
		TakerID:           d.TakerID,
		Amount:            d.Amount,
		Currency:          d.Currency,
		Notes:             d.Notes,
		IsExchange:        d.IsExchange,
		CustomRate:        d.CustomRate,
		ReceivingCurrency: d.ReceivingCurrency,
		ReceivedAmount:    d.ReceivedAmount,
		BalancesAfter:     balancesJSON,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a database transaction model to its domain
// representation, deserializing the balance snapshot.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	var snapshot domain.BalanceSnapshot
	if len(m.BalancesAfter) > 0 {
		if err := json.Unmarshal(m.BalancesAfter, &snapshot); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to unmarshal balance snapshot for transaction %s: %w", m.TransactionID, err)
		}
	}
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		Timestamp:         m.Timestamp,
		GiverID:           m.GiverID,
		TakerID:           m.TakerID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		Notes:             m.Notes,
		IsExchange:        m.IsExchange,
		CustomRate:        m.CustomRate,
		ReceivingCurrency: m.ReceivingCurrency,
		ReceivedAmount:    m.ReceivedAmount,
		BalancesAfter:     snapshot,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}, nil
}
