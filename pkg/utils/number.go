package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseIntOrZero converte um valor numérico do export em inteiro.
// Separadores de milhar são removidos; valores vazios ou inválidos viram 0.
// Valores com casas decimais são arredondados.
func ParseIntOrZero(raw string) int64 {
	cleaned := cleanNumber(raw)
	if cleaned == "" {
		return 0
	}

	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return v
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f))
}

// ParseFloatOrZero converte um valor numérico do export em float.
// Separadores de milhar e sufixo de porcentagem são removidos; valores inválidos viram 0.
func ParseFloatOrZero(raw string) float64 {
	cleaned := cleanNumber(raw)
	if cleaned == "" {
		return 0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SafeDivide retorna numerator/denominator, ou 0 quando o denominador é 0
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

func cleanNumber(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")
	return strings.TrimSpace(cleaned)
}
