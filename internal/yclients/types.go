package yclients

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// API yClients типизировано слабо: булевы поля приходят как bool, число
// или строка, числовые — как число или строка. FlexBool и FlexInt
// приводят все варианты к одному типу при разборе JSON.

type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch s {
	case "null", `""`, "false", "0":
		*b = false
		return nil
	case "true":
		*b = true
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*b = n != 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		unquoted := s[1 : len(s)-1]
		*b = FlexBool(unquoted != "" && unquoted != "0" && !strings.EqualFold(unquoted, "false"))
		return nil
	}
	*b = false
	return nil
}

type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*i = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*i = 0
		return nil
	}
	*i = FlexInt(int(n))
	return nil
}

// StaffRecord — сырая запись сотрудника из API.
type StaffRecord struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	IsActive *FlexBool `json:"is_active"`
}

// ServiceRecord — сырая запись услуги. Название и длительность
// в разных филиалах приходят в разных полях.
type ServiceRecord struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	SeanceLength FlexInt  `json:"seance_length"`
	Duration     FlexInt  `json:"duration"`
	IsMobile     FlexBool `json:"is_mobile"`
	Online       FlexBool `json:"online"`
}

type ServiceRef struct {
	ID int64 `json:"id"`
}

type ClientRef struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// BookingRecord — сырая запись клиента. Явного времени окончания API
// не отдаёт, только datetime начала и seance_length в минутах.
type BookingRecord struct {
	ID           int64        `json:"id"`
	StaffID      int64        `json:"staff_id"`
	Services     []ServiceRef `json:"services"`
	SeanceLength FlexInt      `json:"seance_length"`
	Datetime     string       `json:"datetime"`
	Attendance   int          `json:"attendance"`
	Client       *ClientRef   `json:"client"`
}

// envelope — общий конверт ответа API: {success, data, meta}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		Message string `json:"message"`
	} `json:"meta"`
}

// normalizeList приводит поле data к единому списку сырых записей.
// API непоследовательно: data бывает массивом, либо объектом, значения
// которого и есть записи.
func normalizeList(data json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '{':
		var keyed map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return nil, err
		}
		list := make([]json.RawMessage, 0, len(keyed))
		for _, v := range keyed {
			list = append(list, v)
		}
		return list, nil
	}
	return nil, nil
}
