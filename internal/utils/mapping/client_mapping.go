package mapping

import (
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/SscSPs/activity_tracker/internal/models"
)

func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:       d.ClientID,
		UserID:         d.UserID,
		Name:           d.Name,
		Currency:       d.Currency,
		HolidayCountry: d.HolidayCountry,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:       m.ClientID,
		UserID:         m.UserID,
		Name:           m.Name,
		Currency:       m.Currency,
		HolidayCountry: m.HolidayCountry,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		UserID:      d.UserID,
		Name:        d.Name,
		IsDefault:   d.IsDefault,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		UserID:      m.UserID,
		Name:        m.Name,
		IsDefault:   m.IsDefault,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelMission(d domain.Mission) models.Mission {
	return models.Mission{
		MissionID:   d.MissionID,
		UserID:      d.UserID,
		Name:        d.Name,
		ClientID:    d.ClientID,
		CompanyID:   d.CompanyID,
		DailyRate:   toNullDecimal(d.DailyRate),
		IsActive:    d.IsActive,
		StartDate:   d.StartDate,
		EndDate:     toNullTime(d.EndDate),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainMission(m models.Mission) domain.Mission {
	return domain.Mission{
		MissionID:   m.MissionID,
		UserID:      m.UserID,
		Name:        m.Name,
		ClientID:    m.ClientID,
		CompanyID:   m.CompanyID,
		DailyRate:   fromNullDecimal(m.DailyRate),
		IsActive:    m.IsActive,
		StartDate:   m.StartDate,
		EndDate:     fromNullTime(m.EndDate),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
