package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"qosRoute/internal/aco"
	"qosRoute/internal/ga"
	"qosRoute/internal/pso"
	"qosRoute/internal/ql"
	"qosRoute/internal/sa"
	"qosRoute/internal/sarsa"
)

// algoConfigs — конфигурации всех шести стратегий одного прогона.
type algoConfigs struct {
	GA    ga.Config    `toml:"ga"`
	ACO   aco.Config   `toml:"aco"`
	PSO   pso.Config   `toml:"pso"`
	SA    sa.Config    `toml:"sa"`
	QL    ql.Config    `toml:"ql"`
	SARSA sarsa.Config `toml:"sarsa"`
}

func defaultConfigs() algoConfigs {
	return algoConfigs{
		GA:    ga.DefaultConfig(),
		ACO:   aco.DefaultConfig(),
		PSO:   pso.DefaultConfig(),
		SA:    sa.DefaultConfig(),
		QL:    ql.DefaultConfig(),
		SARSA: sarsa.DefaultConfig(),
	}
}

// loadConfigs читает конфигурации стратегий из TOML-файла поверх
// значений по умолчанию и валидирует каждую секцию.
func loadConfigs(path string) (algoConfigs, error) {
	cfg := defaultConfigs()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return algoConfigs{}, fmt.Errorf("чтение конфигурации %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return algoConfigs{}, err
	}
	return cfg, nil
}

func (c algoConfigs) Validate() error {
	if err := c.GA.Validate(); err != nil {
		return fmt.Errorf("конфигурация генетического алгоритма: %w", err)
	}
	if err := c.ACO.Validate(); err != nil {
		return fmt.Errorf("конфигурация муравьиного алгоритма: %w", err)
	}
	if err := c.PSO.Validate(); err != nil {
		return fmt.Errorf("конфигурация роя частиц: %w", err)
	}
	if err := c.SA.Validate(); err != nil {
		return fmt.Errorf("конфигурация имитации отжига: %w", err)
	}
	if err := c.QL.Validate(); err != nil {
		return fmt.Errorf("конфигурация Q-обучения: %w", err)
	}
	if err := c.SARSA.Validate(); err != nil {
		return fmt.Errorf("конфигурация SARSA: %w", err)
	}
	return nil
}
