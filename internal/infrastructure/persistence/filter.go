package persistence

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ber-data/bertron-client/internal/domain/entities"
)

// filterColumns maps queryable document fields to table columns. Dotted
// coordinate paths address the flattened latitude/longitude columns.
var filterColumns = map[string]string{
	"id":                     "id",
	"name":                   "name",
	"description":            "description",
	"ber_data_source":        "ber_data_source",
	"uri":                    "uri",
	"part_of_collection":     "part_of_collection",
	"date_time_created":      "date_time_created",
	"coordinates.latitude":   "latitude",
	"coordinates.longitude":  "longitude",
}

// jsonListColumns are stored as JSON-encoded string lists; equality on
// them means list containment.
var jsonListColumns = map[string]string{
	"entity_type": "entity_type",
	"alt_ids":     "alt_ids",
}

// regexFields maps fields eligible for $regex matching to accessors on
// the domain entity. Regex conditions are evaluated in Go after the SQL
// clauses since neither sqlite nor postgres share a regex dialect.
var regexFields = map[string]func(*entities.Entity) string{
	"id":              func(e *entities.Entity) string { return e.ID },
	"name":            func(e *entities.Entity) string { return e.Name },
	"description":     func(e *entities.Entity) string { return e.Description },
	"ber_data_source": func(e *entities.Entity) string { return e.BerDataSource },
	"uri":             func(e *entities.Entity) string { return e.URI },
}

// sqlCondition is a single WHERE fragment with its arguments.
type sqlCondition struct {
	expr string
	args []interface{}
}

// regexCondition is a post-SQL predicate evaluated on domain entities.
type regexCondition struct {
	field   string
	pattern *regexp.Regexp
}

func (c *regexCondition) matches(e *entities.Entity) bool {
	return c.pattern.MatchString(regexFields[c.field](e))
}

// filterPlan is the translated form of a Mongo-style filter document.
type filterPlan struct {
	conditions []sqlCondition
	regexes    []regexCondition
}

// needsPostFilter reports whether pagination must happen after Go-side
// regex evaluation instead of in SQL.
func (p *filterPlan) needsPostFilter() bool {
	return len(p.regexes) > 0
}

// translateFilter converts a Mongo-style filter document into a filterPlan.
// Supported per-field forms: bare scalar equality and operator documents
// with $eq, $ne, $in, $gt, $gte, $lt, $lte, $exists and $regex
// (+$options "i"). Unknown fields and operators are rejected.
func translateFilter(filter map[string]interface{}) (*filterPlan, error) {
	plan := &filterPlan{}

	// Deterministic order keeps generated SQL stable across calls.
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := filter[field]

		if operators, ok := value.(map[string]interface{}); ok && hasOperator(operators) {
			if err := translateOperators(plan, field, operators); err != nil {
				return nil, err
			}
			continue
		}

		if err := translateEquality(plan, field, value); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func hasOperator(doc map[string]interface{}) bool {
	for key := range doc {
		if strings.HasPrefix(key, "$") {
			return true
		}
	}
	return false
}

func translateEquality(plan *filterPlan, field string, value interface{}) error {
	if column, ok := jsonListColumns[field]; ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("filter on %q requires a string value", field)
		}
		plan.conditions = append(plan.conditions, containsCondition(column, str))
		return nil
	}

	column, ok := filterColumns[field]
	if !ok {
		return fmt.Errorf("unsupported filter field: %s", field)
	}

	plan.conditions = append(plan.conditions, sqlCondition{
		expr: column + " = ?",
		args: []interface{}{value},
	})
	return nil
}

func translateOperators(plan *filterPlan, field string, operators map[string]interface{}) error {
	// $options only modifies $regex; validated there
	regexOptions := ""
	if opts, ok := operators["$options"].(string); ok {
		regexOptions = opts
	}

	opNames := make([]string, 0, len(operators))
	for op := range operators {
		opNames = append(opNames, op)
	}
	sort.Strings(opNames)

	for _, op := range opNames {
		value := operators[op]

		switch op {
		case "$options":
			if _, hasRegex := operators["$regex"]; !hasRegex {
				return fmt.Errorf("$options requires $regex on field %q", field)
			}
		case "$regex":
			if err := translateRegex(plan, field, value, regexOptions); err != nil {
				return err
			}
		case "$eq":
			if err := translateEquality(plan, field, value); err != nil {
				return err
			}
		case "$ne":
			column, ok := filterColumns[field]
			if !ok {
				return fmt.Errorf("unsupported filter field: %s", field)
			}
			plan.conditions = append(plan.conditions, sqlCondition{
				expr: column + " <> ?",
				args: []interface{}{value},
			})
		case "$in":
			if err := translateIn(plan, field, value); err != nil {
				return err
			}
		case "$gt", "$gte", "$lt", "$lte":
			column, ok := filterColumns[field]
			if !ok {
				return fmt.Errorf("unsupported filter field: %s", field)
			}
			comparators := map[string]string{"$gt": ">", "$gte": ">=", "$lt": "<", "$lte": "<="}
			plan.conditions = append(plan.conditions, sqlCondition{
				expr: fmt.Sprintf("%s %s ?", column, comparators[op]),
				args: []interface{}{value},
			})
		case "$exists":
			if err := translateExists(plan, field, value); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported filter operator %q on field %q", op, field)
		}
	}

	return nil
}

func translateRegex(plan *filterPlan, field string, value interface{}, options string) error {
	if _, ok := regexFields[field]; !ok {
		return fmt.Errorf("$regex is not supported on field %q", field)
	}

	pattern, ok := value.(string)
	if !ok {
		return fmt.Errorf("$regex on field %q requires a string pattern", field)
	}

	for _, opt := range options {
		if opt != 'i' {
			return fmt.Errorf("unsupported $options flag %q on field %q", string(opt), field)
		}
	}
	if strings.ContainsRune(options, 'i') {
		pattern = "(?i)" + pattern
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid $regex on field %q: %w", field, err)
	}

	plan.regexes = append(plan.regexes, regexCondition{field: field, pattern: compiled})
	return nil
}

func translateIn(plan *filterPlan, field string, value interface{}) error {
	values, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("$in on field %q requires an array", field)
	}
	if len(values) == 0 {
		// Mongo semantics: empty $in matches nothing
		plan.conditions = append(plan.conditions, sqlCondition{expr: "1 = 0"})
		return nil
	}

	if column, ok := jsonListColumns[field]; ok {
		exprs := make([]string, 0, len(values))
		args := make([]interface{}, 0, len(values))
		for _, v := range values {
			str, ok := v.(string)
			if !ok {
				return fmt.Errorf("$in on field %q requires string values", field)
			}
			cond := containsCondition(column, str)
			exprs = append(exprs, cond.expr)
			args = append(args, cond.args...)
		}
		plan.conditions = append(plan.conditions, sqlCondition{
			expr: "(" + strings.Join(exprs, " OR ") + ")",
			args: args,
		})
		return nil
	}

	column, ok := filterColumns[field]
	if !ok {
		return fmt.Errorf("unsupported filter field: %s", field)
	}
	plan.conditions = append(plan.conditions, sqlCondition{
		expr: column + " IN ?",
		args: []interface{}{values},
	})
	return nil
}

func translateExists(plan *filterPlan, field string, value interface{}) error {
	exists, ok := value.(bool)
	if !ok {
		return fmt.Errorf("$exists on field %q requires a boolean", field)
	}

	column, ok := filterColumns[field]
	if !ok {
		if c, isList := jsonListColumns[field]; isList {
			column = c
		} else {
			return fmt.Errorf("unsupported filter field: %s", field)
		}
	}

	if exists {
		plan.conditions = append(plan.conditions, sqlCondition{
			expr: column + " IS NOT NULL AND " + column + " <> ''",
		})
	} else {
		plan.conditions = append(plan.conditions, sqlCondition{
			expr: "(" + column + " IS NULL OR " + column + " = '')",
		})
	}
	return nil
}

// containsCondition matches a JSON-encoded string list column containing
// the given element.
func containsCondition(column, element string) sqlCondition {
	encoded := `"` + escapeLike(element) + `"`
	return sqlCondition{
		expr: column + " LIKE ? ESCAPE '\\'",
		args: []interface{}{"%" + encoded + "%"},
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// sortClauses translates a Mongo-style sort document into ORDER BY
// fragments with deterministic field order.
func sortClauses(sortDoc map[string]int) ([]string, error) {
	if len(sortDoc) == 0 {
		return nil, nil
	}

	fields := make([]string, 0, len(sortDoc))
	for field := range sortDoc {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	clauses := make([]string, 0, len(fields))
	for _, field := range fields {
		column, ok := filterColumns[field]
		if !ok {
			return nil, fmt.Errorf("unsupported sort field: %s", field)
		}
		direction := "asc"
		if sortDoc[field] == -1 {
			direction = "desc"
		}
		clauses = append(clauses, column+" "+direction)
	}

	return clauses, nil
}
