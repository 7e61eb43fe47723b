package models

import (
	"sort"
	"time"
)

// Plan тарифный план премиум-подписки.
type Plan struct {
	Code     string        `json:"period"`
	Duration time.Duration `json:"-"`
	Price    float64       `json:"price"` // Цена по каталогу в основных единицах валюты
}

// plans закрытый набор тарифов. Длительности фиксированы и не зависят от цены.
var plans = map[string]Plan{
	"1minute": {Code: "1minute", Duration: time.Minute, Price: 1},
	"5days":   {Code: "5days", Duration: 5 * 24 * time.Hour, Price: 5},
	"10days":  {Code: "10days", Duration: 10 * 24 * time.Hour, Price: 10},
}

// LookupPlan возвращает тариф по коду.
func LookupPlan(code string) (Plan, bool) {
	p, ok := plans[code]
	return p, ok
}

// Plans возвращает все тарифы, упорядоченные по длительности.
func Plans() []Plan {
	res := make([]Plan, 0, len(plans))
	for _, p := range plans {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Duration < res[j].Duration })
	return res
}

// DummySubscriptionInfo используется для приёма данных о купленном тарифе из JSON-запроса.
type DummySubscriptionInfo struct {
	SubscriptionInfo struct {
		Period string  `json:"period"`
		Price  float64 `json:"price" validate:"gt=0"`
	} `json:"subscriptionInfo" validate:"required"`
}
