package extract

// PaymentRecord is the normalized output of one payment schedule workbook.
// Missing sections carry their zero values; only RegionalPayments and
// PFSDetails distinguish "sheet absent" (nil) from "sheet present but empty".
type PaymentRecord struct {
	ContractorCode string  `json:"contractor_code"`
	Month          string  `json:"month"`
	Year           int     `json:"year"`
	NetPayment     float64 `json:"net_payment"`

	ItemCounts      ItemCounts      `json:"item_counts"`
	Financials      Financials      `json:"financials"`
	AdvancePayments AdvancePayments `json:"advance_payments"`
	ServiceCosts    ServiceCosts    `json:"service_costs"`

	PFSDetails       *PFSDetails       `json:"pfs_details,omitempty"`
	RegionalPayments *RegionalPayments `json:"regional_payments,omitempty"`
	HighValueItems   []HighValueItem   `json:"high_value_items"`
}

// ItemCounts holds dispensed item counts split by service line.
type ItemCounts struct {
	Total  int `json:"total"`
	AMS    int `json:"ams"`
	MCR    int `json:"mcr"`
	NHSPfs int `json:"nhs_pfs"`
	CPUS   int `json:"cpus"`
	Other  int `json:"other"`
}

// Financials holds the headline currency amounts from the payment summary.
type Financials struct {
	GrossIngredientCost   float64 `json:"gross_ingredient_cost"`
	NetIngredientCost     float64 `json:"net_ingredient_cost"`
	DispensingPool        float64 `json:"dispensing_pool"`
	EstablishmentPayment  float64 `json:"establishment_payment"`
	PharmacyFirstBase     float64 `json:"pharmacy_first_base"`
	PharmacyFirstActivity float64 `json:"pharmacy_first_activity"`
	AverageGrossValue     float64 `json:"average_gross_value"`
	SupplementaryPayments float64 `json:"supplementary_payments"`
}

// AdvancePayments holds the advance made for the next month and the
// recovery of the advance made the month before.
type AdvancePayments struct {
	PreviousMonth float64 `json:"previous_month"`
	NextMonth     float64 `json:"next_month"`
}

// ServiceCosts holds per-service-line payment amounts from the summary sheet.
type ServiceCosts struct {
	AMS             float64 `json:"ams"`
	MCR             float64 `json:"mcr"`
	NHSPfs          float64 `json:"nhs_pfs"`
	CPUS            float64 `json:"cpus"`
	GlutenFree      float64 `json:"gluten_free"`
	StomaService    float64 `json:"stoma_service"`
	PublicHealth    float64 `json:"public_health"`
	UnscheduledCare float64 `json:"unscheduled_care"`
	Other           float64 `json:"other"`
}

// RegionalPayments is the "Regional Payments" sheet: an itemized list plus
// the amount from the row literally labelled "Sum:".
type RegionalPayments struct {
	TotalAmount    float64                 `json:"total_amount"`
	PaymentDetails []RegionalPaymentDetail `json:"payment_details"`
}

type RegionalPaymentDetail struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// HighValueItem is one dispensed item whose paid GIC met the reporting
// threshold. PaidQuantity and ServiceFlag are only populated when the
// sheet carries those columns.
type HighValueItem struct {
	PaidProductName string   `json:"paid_product_name"`
	PaidGICInclBB   float64  `json:"paid_gic_incl_bb"`
	PaidQuantity    *float64 `json:"paid_quantity,omitempty"`
	ServiceFlag     string   `json:"service_flag,omitempty"`
}

// PFSDetails is the Pharmacy First Service weighted-activity breakdown.
// Every figure defaults to 0; WeightedActivityTotal and TotalPayment are
// derived by the extractor when the sheet does not state them outright.
type PFSDetails struct {
	BasePayment           float64 `json:"base_payment"`
	ActivityPayment       float64 `json:"activity_payment"`
	TotalPayment          float64 `json:"total_payment"`
	WeightedActivityTotal float64 `json:"weighted_activity_total"`

	TreatmentItems     float64 `json:"treatment_items"`
	TotalConsultations float64 `json:"total_consultations"`
	TotalReferrals     float64 `json:"total_referrals"`

	UTITreatmentItems             float64 `json:"uti_treatment_items"`
	UTITreatmentWeighting         float64 `json:"uti_treatment_weighting"`
	UTITreatmentWeightedSubtotal  float64 `json:"uti_treatment_weighted_subtotal"`
	UTIConsultations              float64 `json:"uti_consultations"`
	UTIConsultWeighting           float64 `json:"uti_consult_weighting"`
	UTIConsultWeightedSubtotal    float64 `json:"uti_consult_weighted_subtotal"`
	UTIReferrals                  float64 `json:"uti_referrals"`
	UTIReferralWeighting          float64 `json:"uti_referral_weighting"`
	UTIReferralWeightedSubtotal   float64 `json:"uti_referral_weighted_subtotal"`

	ImpetigoTreatmentItems            float64 `json:"impetigo_treatment_items"`
	ImpetigoTreatmentWeighting        float64 `json:"impetigo_treatment_weighting"`
	ImpetigoTreatmentWeightedSubtotal float64 `json:"impetigo_treatment_weighted_subtotal"`
	ImpetigoConsultations             float64 `json:"impetigo_consultations"`
	ImpetigoConsultWeighting          float64 `json:"impetigo_consult_weighting"`
	ImpetigoConsultWeightedSubtotal   float64 `json:"impetigo_consult_weighted_subtotal"`
	ImpetigoReferrals                 float64 `json:"impetigo_referrals"`
	ImpetigoReferralWeighting         float64 `json:"impetigo_referral_weighting"`
	ImpetigoReferralWeightedSubtotal  float64 `json:"impetigo_referral_weighted_subtotal"`

	ShinglesTreatmentItems            float64 `json:"shingles_treatment_items"`
	ShinglesTreatmentWeighting        float64 `json:"shingles_treatment_weighting"`
	ShinglesTreatmentWeightedSubtotal float64 `json:"shingles_treatment_weighted_subtotal"`
	ShinglesConsultations             float64 `json:"shingles_consultations"`
	ShinglesConsultWeighting          float64 `json:"shingles_consult_weighting"`
	ShinglesConsultWeightedSubtotal   float64 `json:"shingles_consult_weighted_subtotal"`
	ShinglesReferrals                 float64 `json:"shingles_referrals"`
	ShinglesReferralWeighting         float64 `json:"shingles_referral_weighting"`
	ShinglesReferralWeightedSubtotal  float64 `json:"shingles_referral_weighted_subtotal"`

	SkinInfectionTreatmentItems            float64 `json:"skin_infection_treatment_items"`
	SkinInfectionTreatmentWeighting        float64 `json:"skin_infection_treatment_weighting"`
	SkinInfectionTreatmentWeightedSubtotal float64 `json:"skin_infection_treatment_weighted_subtotal"`
	SkinInfectionConsultations             float64 `json:"skin_infection_consultations"`
	SkinInfectionConsultWeighting          float64 `json:"skin_infection_consult_weighting"`
	SkinInfectionConsultWeightedSubtotal   float64 `json:"skin_infection_consult_weighted_subtotal"`
	SkinInfectionReferrals                 float64 `json:"skin_infection_referrals"`
	SkinInfectionReferralWeighting         float64 `json:"skin_infection_referral_weighting"`
	SkinInfectionReferralWeightedSubtotal  float64 `json:"skin_infection_referral_weighted_subtotal"`

	HayfeverTreatmentItems            float64 `json:"hayfever_treatment_items"`
	HayfeverTreatmentWeighting        float64 `json:"hayfever_treatment_weighting"`
	HayfeverTreatmentWeightedSubtotal float64 `json:"hayfever_treatment_weighted_subtotal"`
	HayfeverConsultations             float64 `json:"hayfever_consultations"`
	HayfeverConsultWeighting          float64 `json:"hayfever_consult_weighting"`
	HayfeverConsultWeightedSubtotal   float64 `json:"hayfever_consult_weighted_subtotal"`
	HayfeverReferrals                 float64 `json:"hayfever_referrals"`
	HayfeverReferralWeighting         float64 `json:"hayfever_referral_weighting"`
	HayfeverReferralWeightedSubtotal  float64 `json:"hayfever_referral_weighted_subtotal"`
}
