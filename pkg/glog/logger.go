package glog

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerValue  atomic.Value // *zap.Logger
	sugaredValue atomic.Value // *zap.SugaredLogger
	atomicLevel  = zap.NewAtomicLevel()
)

func init() {
	// 未显式初始化前只输出到控制台，避免在导入时创建日志文件
	Init(&Config{Level: "info", PrintConsole: true})
}

var encoderConfig = zapcore.EncoderConfig{
	MessageKey:     "M",
	LevelKey:       "L",
	TimeKey:        "T",
	CallerKey:      "C",
	NameKey:        "N",
	StacktraceKey:  "S",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.LowercaseLevelEncoder,
	EncodeTime:     zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000Z0700"),
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// Init 初始化全局 logger
// cfg: 配置对象，如果为 nil 则保持当前 logger 不变
func Init(cfg *Config) {
	if cfg == nil {
		return
	}
	atomicLevel.SetLevel(parseLevel(cfg.Level))

	cores := make([]zapcore.Core, 0, 2)
	if cfg.Path != "" {
		loggerWriter := newWriter(cfg.Path, cfg.File)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(loggerWriter), atomicLevel))
	}
	if cfg.PrintConsole {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), atomicLevel))
	}
	logger := zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.AddCallerSkip(1),
	)
	store(logger)
}

// InitFromConfig 根据配置初始化 glog，并先同步旧 logger 的缓冲
func InitFromConfig(cfg *Config) error {
	Stop()
	Init(cfg)
	return nil
}

// Replace 直接替换全局 logger，测试中常用 zaptest/observer 注入
func Replace(logger *zap.Logger) {
	if logger == nil {
		return
	}
	store(logger.WithOptions(zap.AddCallerSkip(1)))
}

func store(logger *zap.Logger) {
	loggerValue.Store(logger)
	sugaredValue.Store(logger.Sugar())
}

// Stop 停止 logger，同步所有缓冲的日志
func Stop() {
	if l := getLogger(); l != nil {
		_ = l.Sync()
	}
}

// SetLogLevel 设置日志级别
func SetLogLevel(logLevel zapcore.Level) {
	atomicLevel.SetLevel(logLevel)
}

// GetLevel 获取当前日志级别
func GetLevel() zapcore.Level {
	return atomicLevel.Level()
}

func getLogger() *zap.Logger {
	if v := loggerValue.Load(); v != nil {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return nil
}

func getSugaredLogger() *zap.SugaredLogger {
	if v := sugaredValue.Load(); v != nil {
		if sl, ok := v.(*zap.SugaredLogger); ok {
			return sl
		}
	}
	return nil
}

// Debug 输出 Debug 级别日志
func Debug(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Debug(msg, fields...)
	}
}

// Info 输出 Info 级别日志
func Info(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Info(msg, fields...)
	}
}

// Warn 输出 Warn 级别日志
func Warn(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Warn(msg, fields...)
	}
}

// Error 输出 Error 级别日志
func Error(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Error(msg, fields...)
	}
}

// Fatal 输出 Fatal 级别日志并退出程序
func Fatal(msg string, fields ...zap.Field) {
	if l := getLogger(); l != nil {
		l.Fatal(msg, fields...)
	}
}

func Infof(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Infof(template, args...)
	}
}

func Warnf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Warnf(template, args...)
	}
}

func Errorf(template string, args ...interface{}) {
	if sl := getSugaredLogger(); sl != nil {
		sl.Errorf(template, args...)
	}
}
