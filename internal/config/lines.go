package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const wagoPrefix = "ns=4;s=|var|WAGO 750-8212 PFC200 G2 2ETH RS.Application.GVL_OPCUA."

// OPCUAConfig описывает таблицу линий (îlots) и адреса тегов на контроллерах
type OPCUAConfig struct {
	Lines         []LineConfig
	Tags          TagConfig
	Timeout       time.Duration
	PulseDuration time.Duration
}

// LineConfig связывает идентификатор линии с эндпоинтом контроллера
type LineConfig struct {
	ID       string
	Endpoint string
}

// TagConfig содержит NodeId тегов, одинаковые для всех линий
type TagConfig struct {
	OrderRef     string `yaml:"order_ref"`
	ProductCode  string `yaml:"product_code"`
	Quantity     string `yaml:"quantity"`
	UserRole     string `yaml:"user_role"`
	Validate     string `yaml:"validate"`
	StateMachine string `yaml:"state_machine"`
}

// linesFile - формат файла OPCUA_LINES_FILE
type linesFile struct {
	Lines map[string]string `yaml:"lines"`
	Tags  TagConfig         `yaml:"tags"`
}

// DefaultTags возвращает адреса тегов программы WAGO PFC200
func DefaultTags() TagConfig {
	return TagConfig{
		OrderRef:     wagoPrefix + "REF_OF",
		ProductCode:  wagoPrefix + "Code_Produit",
		Quantity:     wagoPrefix + "QTS",
		UserRole:     wagoPrefix + "Mode_IHM",
		Validate:     wagoPrefix + "BP_Vld_OF_P4",
		StateMachine: "ns=2;s=State",
	}
}

func defaultLines() map[string]string {
	return map[string]string{
		"LGN01": "opc.tcp://172.30.30.110:4840",
		"LGN02": "opc.tcp://172.30.30.120:4840",
		"LGN03": "opc.tcp://172.30.30.130:4840",
	}
}

// Endpoint возвращает эндпоинт линии
func (c OPCUAConfig) Endpoint(line string) (string, bool) {
	for _, l := range c.Lines {
		if l.ID == line {
			return l.Endpoint, true
		}
	}
	return "", false
}

// LineIDs возвращает идентификаторы линий в стабильном порядке
func (c OPCUAConfig) LineIDs() []string {
	ids := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		ids[i] = l.ID
	}
	return ids
}

// loadOPCUA собирает таблицу линий: значения по умолчанию, затем файл, затем OPCUA_<LINE>
func loadOPCUA() (OPCUAConfig, error) {
	lines := defaultLines()
	tags := DefaultTags()

	if path := getEnv("OPCUA_LINES_FILE", ""); path != "" {
		file, err := readLinesFile(path)
		if err != nil {
			return OPCUAConfig{}, err
		}
		if len(file.Lines) > 0 {
			lines = file.Lines
		}
		tags = mergeTags(tags, file.Tags)
	}

	cfg := OPCUAConfig{
		Tags:          tags,
		Timeout:       getEnvAsMillis("OPCUA_TIMEOUT_MS", 5000),
		PulseDuration: getEnvAsMillis("PULSE_DURATION_MS", 1000),
	}
	for id, endpoint := range lines {
		id = strings.ToUpper(strings.TrimSpace(id))
		endpoint = getEnv("OPCUA_"+id, strings.TrimSpace(endpoint))
		if endpoint == "" {
			return OPCUAConfig{}, fmt.Errorf("пустой эндпоинт для линии %s", id)
		}
		cfg.Lines = append(cfg.Lines, LineConfig{ID: id, Endpoint: endpoint})
	}
	sort.Slice(cfg.Lines, func(i, j int) bool { return cfg.Lines[i].ID < cfg.Lines[j].ID })

	return cfg, nil
}

func readLinesFile(path string) (*linesFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл линий %s: %w", path, err)
	}
	var file linesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("неверный формат файла линий %s: %w", path, err)
	}
	return &file, nil
}

func mergeTags(base, override TagConfig) TagConfig {
	pick := func(def, v string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return def
	}
	return TagConfig{
		OrderRef:     pick(base.OrderRef, override.OrderRef),
		ProductCode:  pick(base.ProductCode, override.ProductCode),
		Quantity:     pick(base.Quantity, override.Quantity),
		UserRole:     pick(base.UserRole, override.UserRole),
		Validate:     pick(base.Validate, override.Validate),
		StateMachine: pick(base.StateMachine, override.StateMachine),
	}
}
