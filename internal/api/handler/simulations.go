package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cpg-decision-api/internal/usecases/simulating"
	"github.com/vfg2006/cpg-decision-api/pkg/apiErrors"
)

type promoRequest struct {
	SKUID           string   `json:"sku_id"`
	StoreID         string   `json:"store_id"`
	DiscountPct     *float64 `json:"discount_pct"`
	ExpectedLiftPct *float64 `json:"expected_lift_pct"`
}

type priceChangeRequest struct {
	SKUID            string   `json:"sku_id"`
	PriceChangePct   *float64 `json:"price_change_pct"`
	DemandElasticity *float64 `json:"demand_elasticity"`
}

type supplyShortageRequest struct {
	SKUID         string   `json:"sku_id"`
	SupplyDropPct *float64 `json:"supply_drop_pct"`
}

// SimulatePromo projeta o impacto de um desconto promocional
func SimulatePromo(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.SKUID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingParameter, "sku_id é obrigatório", nil)
			return
		}

		params := simulating.PromoParams{
			SKUID:           req.SKUID,
			StoreID:         req.StoreID,
			DiscountPct:     simulating.DefaultDiscountPct,
			ExpectedLiftPct: simulating.DefaultExpectedLiftPct,
		}

		if req.DiscountPct != nil {
			params.DiscountPct = *req.DiscountPct
		}
		if req.ExpectedLiftPct != nil {
			params.ExpectedLiftPct = *req.ExpectedLiftPct
		}

		result, err := service.SimulatePromo(params)
		if err != nil {
			logrus.WithError(err).Warn("Erro na simulação de promoção")
			writeAnalysisError(w, err)
			return
		}

		respond(w, result, "simulação de promoção")
	}
}

// SimulatePriceChange projeta o efeito de uma variação de preço via elasticidade
func SimulatePriceChange(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req priceChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.SKUID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingParameter, "sku_id é obrigatório", nil)
			return
		}

		params := simulating.PriceChangeParams{
			SKUID:            req.SKUID,
			PriceChangePct:   simulating.DefaultPriceChangePct,
			DemandElasticity: simulating.DefaultDemandElasticity,
		}

		if req.PriceChangePct != nil {
			params.PriceChangePct = *req.PriceChangePct
		}
		if req.DemandElasticity != nil {
			params.DemandElasticity = *req.DemandElasticity
		}

		result, err := service.SimulatePriceChange(params)
		if err != nil {
			logrus.WithError(err).Warn("Erro na simulação de mudança de preço")
			writeAnalysisError(w, err)
			return
		}

		respond(w, result, "simulação de mudança de preço")
	}
}

// SimulateSupplyShortage projeta o impacto de uma ruptura de abastecimento
func SimulateSupplyShortage(service simulating.Simulator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req supplyShortageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		if req.SKUID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingParameter, "sku_id é obrigatório", nil)
			return
		}

		params := simulating.SupplyShortageParams{
			SKUID:         req.SKUID,
			SupplyDropPct: simulating.DefaultSupplyDropPct,
		}

		if req.SupplyDropPct != nil {
			params.SupplyDropPct = *req.SupplyDropPct
		}

		result, err := service.SimulateSupplyShortage(params)
		if err != nil {
			logrus.WithError(err).Warn("Erro na simulação de ruptura de abastecimento")
			writeAnalysisError(w, err)
			return
		}

		respond(w, result, "simulação de ruptura de abastecimento")
	}
}

// respond envia o resultado estruturado como JSON
func respond(w http.ResponseWriter, result any, operation string) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logrus.WithError(err).Errorf("Erro ao enviar resposta da %s", operation)
	}
}
