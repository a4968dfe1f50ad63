package parser

import (
	"fmt"
	"log"
	"strings"

	"travelfuse/internal/domain"
)

// Func is a module parser: a pure function of the document text and the
// parsing context.
type Func[T any] func(text string, pctx Context) Outcome[T]

// SectionKeywords bound a module's section within the document.
type SectionKeywords struct {
	Start []string `mapstructure:"start" json:"start"`
	End   []string `mapstructure:"end" json:"end"`
}

// Modules bundles the four module parsers.
type Modules struct {
	Accommodation Func[domain.AccommodationData]
	Food          Func[domain.FoodExperienceData]
	Transport     Func[domain.TransportationData]
	Tips          Func[domain.TravelTipsData]
}

var defaultKeywords = map[domain.ModuleName]SectionKeywords{
	domain.ModuleAccommodation: {
		Start: []string{"住宿", "酒店", "旅馆", "民宿", "客栈", "hotel", "accommodation", "lodging"},
		End:   []string{"美食", "交通", "贴士", "建议", "food", "transport", "tips"},
	},
	domain.ModuleFood: {
		Start: []string{"美食", "餐厅", "小吃", "特色菜", "料理", "food", "restaurant", "cuisine"},
		End:   []string{"交通", "住宿", "贴士", "建议", "transport", "accommodation", "tips"},
	},
	domain.ModuleTransport: {
		Start: []string{"交通", "出行", "路线", "车票", "机票", "transport", "travel", "route"},
		End:   []string{"住宿", "美食", "贴士", "建议", "accommodation", "food", "tips"},
	},
	domain.ModuleTips: {
		Start: []string{"贴士", "建议", "注意", "提醒", "小贴士", "tips", "advice", "notice"},
		End:   []string{"住宿", "美食", "交通", "总结", "accommodation", "food", "transport", "summary"},
	},
}

// DefaultKeywords returns a copy of the built-in section keywords for module.
func DefaultKeywords(module domain.ModuleName) SectionKeywords {
	kw := defaultKeywords[module]
	return SectionKeywords{
		Start: append([]string{}, kw.Start...),
		End:   append([]string{}, kw.End...),
	}
}

// DefaultModules returns the four parsers with built-in keywords.
func DefaultModules() Modules {
	m, _ := NewModules(nil)
	return m
}

// NewModules builds the four parsers, replacing the keyword window of any
// module named in overrides. An override with an empty start list keeps the
// built-in start keywords.
func NewModules(overrides map[domain.ModuleName]SectionKeywords) (Modules, error) {
	kws := make(map[domain.ModuleName]SectionKeywords, len(defaultKeywords))
	for _, name := range domain.AllModules {
		kws[name] = DefaultKeywords(name)
	}
	for name, kw := range overrides {
		if !domain.ValidModuleName(string(name)) {
			return Modules{}, fmt.Errorf("%w: %s", domain.ErrUnknownModule, name)
		}
		merged := kws[name]
		if len(kw.Start) > 0 {
			merged.Start = kw.Start
		}
		if len(kw.End) > 0 {
			merged.End = kw.End
		}
		log.Printf("parser.NewModules: custom keywords for %s (start=%s)", name, strings.Join(merged.Start, ","))
		kws[name] = merged
	}
	return Modules{
		Accommodation: NewAccommodationParser(kws[domain.ModuleAccommodation]),
		Food:          NewFoodParser(kws[domain.ModuleFood]),
		Transport:     NewTransportParser(kws[domain.ModuleTransport]),
		Tips:          NewTipsParser(kws[domain.ModuleTips]),
	}, nil
}

// runModule is the shared shape of every module parser: locate the section,
// fall back to the canned record with a warning when it is absent, otherwise
// build the record. A panic is recovered into a failed outcome that still
// carries the canned record.
func runModule[T any](module domain.ModuleName, kw SectionKeywords, text string, notFound string, fallback func() T, build func(section string) T) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			err := &ModuleError{Module: module, Err: PanicError(r)}
			log.Printf("parser.%s: recovered: %v", module, r)
			fb := fallback()
			out = Failure([]string{err.Error()}, &fb)
		}
	}()

	section, ok := SectionExtractor{}.ExtractSection(text, kw.Start, kw.End)
	if !ok {
		return Success(fallback(), notFound)
	}
	return Success(build(section))
}
