package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rafabene/usuarios-backend/internal/domain/errors"
	"github.com/rafabene/usuarios-backend/internal/domain/repositories"
)

// Parâmetros de consulta aceitos por FindUsers
const (
	ParamStatus            = "status"
	ParamName              = "name"
	ParamCreatedBeforeDate = "fechaInicioAntes"
	ParamCreatedAfterDate  = "fechaInicioDespues"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// BuildUserFilter traduz os parâmetros de consulta em filtros do repositório.
//
// Sem parâmetros, retorna apenas usuários ativos. As duas datas ocupam a mesma
// condição sobre created_at: se ambas vierem, fechaInicioDespues prevalece.
func BuildUserFilter(params map[string]string) (repositories.UserFilters, error) {
	filters := repositories.ActiveUsers()

	if status, ok := params[ParamStatus]; ok {
		filters.Status = status == "true"
	}

	if name := params[ParamName]; name != "" {
		filters.Name = &name
	}

	if raw := params[ParamCreatedBeforeDate]; raw != "" {
		date, err := parseFilterDate(raw)
		if err != nil {
			return filters, err
		}
		filters.CreatedAt = &repositories.CreatedAtCondition{
			Comparison: repositories.CreatedBefore,
			Date:       date,
		}
	}

	if raw := params[ParamCreatedAfterDate]; raw != "" {
		date, err := parseFilterDate(raw)
		if err != nil {
			return filters, err
		}
		filters.CreatedAt = &repositories.CreatedAtCondition{
			Comparison: repositories.CreatedAfter,
			Date:       date,
		}
	}

	return filters, nil
}

// parseFilterDate aceita 2024/01/31 ou 2024-01-31 (meia-noite UTC) e timestamps ISO 8601
func parseFilterDate(raw string) (time.Time, error) {
	normalized := strings.ReplaceAll(raw, "/", "-")

	for _, layout := range dateLayouts {
		if date, err := time.ParseInLocation(layout, normalized, time.UTC); err == nil {
			return date.UTC(), nil
		}
	}

	return time.Time{}, errors.NewValidationError(errors.ErrInvalidDate, fmt.Errorf("unparseable date %q", raw))
}
