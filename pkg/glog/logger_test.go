package glog

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplace_RecordsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	defer Init(&Config{Level: "info", PrintConsole: true})

	Info("节点上线", zap.String("nodeId", "n1"))
	Warnf("节点 %s 不可用", "n2")

	if logs.Len() != 2 {
		t.Fatalf("期望 2 条日志, 实际 %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "节点上线" {
		t.Errorf("日志内容不匹配: %q", entry.Message)
	}
	if entry.ContextMap()["nodeId"] != "n1" {
		t.Errorf("日志字段不匹配: %v", entry.ContextMap())
	}
	if logs.All()[1].Message != "节点 n2 不可用" {
		t.Errorf("格式化日志内容不匹配: %q", logs.All()[1].Message)
	}
}

func TestInit_Level(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "msm.log")
	cfg.PrintConsole = false
	cfg.Level = "warn"
	if err := InitFromConfig(cfg); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	defer Init(&Config{Level: "info", PrintConsole: true})

	if GetLevel() != zapcore.WarnLevel {
		t.Errorf("期望日志级别 warn, 实际 %v", GetLevel())
	}
	SetLogLevel(zapcore.DebugLevel)
	if GetLevel() != zapcore.DebugLevel {
		t.Errorf("期望日志级别 debug, 实际 %v", GetLevel())
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	if parseLevel("verbose") != zapcore.InfoLevel {
		t.Error("无法识别的级别应该回退到 info")
	}
	if parseLevel("error") != zapcore.ErrorLevel {
		t.Error("error 级别解析错误")
	}
}
