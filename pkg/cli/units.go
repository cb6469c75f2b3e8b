package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/units"
)

func newUnitsCommand() *Command {
	cmd := &Command{
		Name:        "units",
		Description: "List units per quantity kind, or convert a measurement to its canonical unit",
		Flags:       newFlagSet("units"),
	}

	precision := cmd.Flags.Float64("precision", 0, "Precision of the value, in the same unit")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return runUnits(units.Default(), cmd.Flags.Args(), *precision)
	}

	return cmd
}

// runUnits handles "units", "units <kind>" and "units <kind> <value> <unit>"
func runUnits(registry *units.Registry, args []string, precision float64) error {
	switch len(args) {
	case 0:
		for _, kind := range units.Kinds() {
			if err := printKind(registry, kind); err != nil {
				return err
			}
		}
		return nil
	case 1:
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		return printKind(registry, kind)
	case 3:
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}
		unit, ok := registry.UnitByName(kind, strings.ToUpper(args[2]))
		if !ok {
			return fmt.Errorf("unknown %s unit %q", kind, args[2])
		}

		res, err := registry.Canonicalize(kind, value, precision, unit)
		if err != nil {
			return err
		}
		out := strconv.FormatFloat(res.Value, 'g', -1, 64)
		if res.Precision > 0 {
			out += " ± " + strconv.FormatFloat(res.Precision, 'g', -1, 64)
		}
		fmt.Fprintf(stdout, "%s %s\n", out, registry.UnitName(kind, res.Unit))
		return nil
	default:
		return fmt.Errorf("usage: units [kind [value unit]]")
	}
}

func parseKind(name string) (units.Kind, error) {
	kind, ok := units.ParseKind(name)
	if !ok {
		names := make([]string, 0, len(units.Kinds()))
		for _, k := range units.Kinds() {
			names = append(names, k.String())
		}
		return 0, fmt.Errorf("unknown quantity kind %q (known: %s)", name, strings.Join(names, ", "))
	}
	return kind, nil
}

func printKind(registry *units.Registry, kind units.Kind) error {
	list, err := registry.Units(kind)
	if err != nil {
		return err
	}
	names := make([]string, len(list))
	for i, u := range list {
		names[i] = u.Name
		if u.Canonical {
			names[i] += "*"
		}
	}
	fmt.Fprintf(stdout, "%-14s %s\n", kind, strings.Join(names, " "))
	return nil
}
