package calculator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"psychrometric-calculator/psychrometrics"
	"psychrometric-calculator/units"
)

// Outcome tags the kind of Result produced by a calculation
type Outcome int

const (
	Success Outcome = iota
	InputParseFailure
	ComputationFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case InputParseFailure:
		return "input_parse_error"
	case ComputationFailure:
		return "computation_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

const (
	InputParseMessage        = "Error: Please enter valid numbers"
	computationMessagePrefix = "Error in calculation: "
)

// Computer derives moist-air properties from dry-bulb temperature and relative humidity
type Computer interface {
	Compute(dryBulb units.Fahrenheit, relativeHumidity units.RelativeHumidity) (*psychrometrics.Properties, error)
}

// ComputerFunc adapts a plain function to the Computer interface
type ComputerFunc func(units.Fahrenheit, units.RelativeHumidity) (*psychrometrics.Properties, error)

func (f ComputerFunc) Compute(dryBulb units.Fahrenheit, relativeHumidity units.RelativeHumidity) (*psychrometrics.Properties, error) {
	return f(dryBulb, relativeHumidity)
}

// Result is the outcome of one calculation request. Properties and Fields are
// only set on Success; Message is only set on failure.
type Result struct {
	Outcome    Outcome
	Properties *psychrometrics.Properties
	Fields     []Field
	Message    string
	Err        error
}

func (r *Result) Succeeded() bool {
	return r.Outcome == Success
}

type Calculator struct {
	computer Computer
}

func New(computer Computer) *Calculator {
	return &Calculator{computer}
}

// NewDefault returns a Calculator backed by the ASHRAE formula
func NewDefault() *Calculator {
	return New(ComputerFunc(psychrometrics.Compute))
}

// Parse interprets the textual form fields as numbers
func Parse(dbTemp, rh string) (units.Fahrenheit, units.RelativeHumidity, error) {
	temperature, err := strconv.ParseFloat(strings.TrimSpace(dbTemp), 64)
	if err != nil {
		return 0, 0, &InputParseError{err}
	}

	humidity, err := strconv.ParseFloat(strings.TrimSpace(rh), 64)
	if err != nil {
		return 0, 0, &InputParseError{err}
	}

	return units.Fahrenheit(temperature), units.RelativeHumidity(humidity), nil
}

// Calculate parses the raw inputs and computes the properties they describe
func (c *Calculator) Calculate(dbTemp, rh string) *Result {
	temperature, humidity, err := Parse(dbTemp, rh)
	if err != nil {
		return &Result{
			Outcome: InputParseFailure,
			Message: InputParseMessage,
			Err:     err,
		}
	}

	return c.Evaluate(temperature, humidity)
}

// Evaluate computes the properties of already numeric inputs
func (c *Calculator) Evaluate(temperature units.Fahrenheit, humidity units.RelativeHumidity) *Result {
	props, err := c.computer.Compute(temperature, humidity)
	if err == nil && props == nil {
		err = errors.New("no properties computed")
	}
	if err != nil {
		return &Result{
			Outcome: ComputationFailure,
			Message: computationMessagePrefix + err.Error(),
			Err:     &ComputationError{err},
		}
	}

	return &Result{
		Outcome:    Success,
		Properties: props,
		Fields:     Format(props),
	}
}
