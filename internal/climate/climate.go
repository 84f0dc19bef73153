// Package climate holds the environmental conversions used with weather
// sensors: temperature scales, dewpoint and barometric altitude.
package climate

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when an input lies outside the domain of a formula.
var ErrOutOfRange = errors.New("input out of range")

const (
	absoluteZeroC = -273.15

	// Magnus-type coefficients for dewpoint over water.
	dewpointB = 1762.39
	dewpointC = 235.66

	// International barometric formula.
	altitudeScaleM    = 44330.0
	altitudeExponent  = 5.255
	StandardSeaLevelP = 1013.25 // hPa
)

// CelsiusToFahrenheit converts degrees Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts degrees Fahrenheit to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// Dewpoint returns the dewpoint in °C for relative humidity in percent and
// ambient temperature in °C.
func Dewpoint(relHumidity, tempC float64) (float64, error) {
	if relHumidity <= 0 {
		return 0, fmt.Errorf("%w: relative humidity %.2f%%", ErrOutOfRange, relHumidity)
	}
	if tempC <= absoluteZeroC {
		return 0, fmt.Errorf("%w: temperature %.2f°C", ErrOutOfRange, tempC)
	}
	if tempC == -dewpointC {
		return 0, fmt.Errorf("%w: temperature %.2f°C is a singular point", ErrOutOfRange, tempC)
	}

	d := math.Log10(relHumidity) - 2 - dewpointB/(tempC+dewpointC)
	if d == 0 {
		return 0, fmt.Errorf("%w: no dewpoint for %.2f%% at %.2f°C", ErrOutOfRange, relHumidity, tempC)
	}
	return -(dewpointB/d + dewpointC), nil
}

// PressureAltitude returns the altitude in metres at which pressureHPa is
// measured, relative to the given sea level pressure.
func PressureAltitude(pressureHPa, seaLevelHPa float64) (float64, error) {
	if pressureHPa <= 0 || seaLevelHPa <= 0 {
		return 0, fmt.Errorf("%w: pressures must be positive", ErrOutOfRange)
	}
	return altitudeScaleM * (1 - math.Pow(pressureHPa/seaLevelHPa, 1/altitudeExponent)), nil
}

// SeaLevelPressure reduces pressureHPa measured at altitudeM to sea level.
func SeaLevelPressure(pressureHPa, altitudeM float64) (float64, error) {
	if pressureHPa <= 0 {
		return 0, fmt.Errorf("%w: pressure must be positive", ErrOutOfRange)
	}
	if altitudeM >= altitudeScaleM {
		return 0, fmt.Errorf("%w: altitude %.0fm", ErrOutOfRange, altitudeM)
	}
	return pressureHPa / math.Pow(1-altitudeM/altitudeScaleM, altitudeExponent), nil
}
