// Package inference loads exported policy networks and serves predictions from them. Only TFLite
// models are supported; the exported graph must take a labeled point cloud and a normalized joint
// configuration and emit a normalized joint displacement.
package inference

import (
	"context"
	"runtime"

	tflite "github.com/mattn/go-tflite"
	"github.com/pkg/errors"

	"github.com/yclihkclr/motion-policy-networks/pointcloud"
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
)

// TFLitePolicy is a motion policy backed by a TFLite interpreter. It owns the interpreter and its
// scratch buffers and is safe for serial use only.
type TFLitePolicy struct {
	model       *tflite.Model
	interpreter *tflite.Interpreter
	options     *tflite.InterpreterOptions
	logger      errorLogger

	cloudIndex  int
	configIndex int
	numPoints   int
	dof         int

	qBuf []float32
}

type errorLogger interface {
	Errorw(msg string, keysAndValues ...interface{})
}

// NewTFLitePolicy loads a policy network from a .tflite file. numThreads below 1 uses one thread
// per CPU. The model must expose exactly two input tensors, a rank-3 point cloud of shape
// [1, numPoints, 4] and a rank-2 configuration of shape [1, dof], and one rank-2 output of shape
// [1, dof]; the tensors are told apart by rank, so their order in the file does not matter.
func NewTFLitePolicy(modelPath string, numThreads int, logger errorLogger) (*TFLitePolicy, error) {
	model := tflite.NewModelFromFile(modelPath)
	if model == nil {
		return nil, errors.Errorf("failed to load tflite model from %s", modelPath)
	}

	if numThreads < 1 {
		numThreads = runtime.NumCPU()
	}
	options := tflite.NewInterpreterOptions()
	if options == nil {
		model.Delete()
		return nil, errors.New("failed to create interpreter options")
	}
	options.SetNumThread(numThreads)
	options.SetErrorReporter(func(msg string, userData interface{}) {
		if logger != nil {
			logger.Errorw("tflite", "msg", msg)
		}
	}, nil)

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		options.Delete()
		model.Delete()
		return nil, errors.New("failed to create interpreter")
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		options.Delete()
		model.Delete()
		return nil, errors.New("failed to allocate tensors")
	}

	policy := &TFLitePolicy{
		model:       model,
		interpreter: interpreter,
		options:     options,
		logger:      logger,
	}
	if err := policy.checkSignature(); err != nil {
		policy.Close()
		return nil, errors.Wrap(err, "unexpected model signature")
	}
	policy.qBuf = make([]float32, policy.dof)
	return policy, nil
}

func (p *TFLitePolicy) checkSignature() error {
	if count := p.interpreter.GetInputTensorCount(); count != 2 {
		return errors.Errorf("expected 2 input tensors, got %d", count)
	}
	p.cloudIndex, p.configIndex = -1, -1
	for i := 0; i < 2; i++ {
		in := p.interpreter.GetInputTensor(i)
		if in.Type() != tflite.Float32 {
			return errors.Errorf("input tensor %d has type %s, expected FLOAT32", i, in.Type())
		}
		switch in.NumDims() {
		case 3:
			p.cloudIndex = i
			p.numPoints = in.Dim(1)
			if in.Dim(2) != 4 {
				return errors.Errorf("point cloud tensor has %d channels, expected 4", in.Dim(2))
			}
		case 2:
			p.configIndex = i
			p.dof = in.Dim(1)
		default:
			return errors.Errorf("input tensor %d has rank %d", i, in.NumDims())
		}
	}
	if p.cloudIndex < 0 || p.configIndex < 0 {
		return errors.New("could not identify point cloud and configuration inputs")
	}

	if count := p.interpreter.GetOutputTensorCount(); count != 1 {
		return errors.Errorf("expected 1 output tensor, got %d", count)
	}
	out := p.interpreter.GetOutputTensor(0)
	if out.Type() != tflite.Float32 {
		return errors.Errorf("output tensor has type %s, expected FLOAT32", out.Type())
	}
	if out.NumDims() != 2 || out.Dim(1) != p.dof {
		return errors.Errorf("output tensor does not match configuration shape [1 %d]", p.dof)
	}
	return nil
}

// NumPoints returns the total scene cloud size the loaded network expects.
func (p *TFLitePolicy) NumPoints() int { return p.numPoints }

// DoF returns the configuration length the loaded network expects.
func (p *TFLitePolicy) DoF() int { return p.dof }

// Predict runs one forward pass and returns the predicted normalized joint displacement.
func (p *TFLitePolicy) Predict(
	ctx context.Context,
	scene *pointcloud.SceneCloud,
	qNorm []referenceframe.Input,
) ([]referenceframe.Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scene.Size() != p.numPoints {
		return nil, errors.Errorf("scene has %d points but the network expects %d", scene.Size(), p.numPoints)
	}
	if len(qNorm) != p.dof {
		return nil, referenceframe.NewIncorrectInputLengthError(len(qNorm), p.dof)
	}

	cloudTensor := p.interpreter.GetInputTensor(p.cloudIndex)
	if status := cloudTensor.CopyFromBuffer(scene.Data()); status != tflite.OK {
		return nil, errors.New("copying point cloud to input tensor failed")
	}
	for i, q := range qNorm {
		p.qBuf[i] = float32(q.Value)
	}
	configTensor := p.interpreter.GetInputTensor(p.configIndex)
	if status := configTensor.CopyFromBuffer(p.qBuf); status != tflite.OK {
		return nil, errors.New("copying configuration to input tensor failed")
	}

	if status := p.interpreter.Invoke(); status != tflite.OK {
		return nil, errors.New("invoke failed")
	}

	raw := p.interpreter.GetOutputTensor(0).Float32s()
	if len(raw) != p.dof {
		return nil, errors.Errorf("output tensor has %d values, expected %d", len(raw), p.dof)
	}
	delta := make([]referenceframe.Input, p.dof)
	for i, v := range raw {
		delta[i] = referenceframe.Input{Value: float64(v)}
	}
	return delta, nil
}

// Close releases the interpreter and the model. The policy must not be used afterward.
func (p *TFLitePolicy) Close() {
	if p.interpreter != nil {
		p.interpreter.Delete()
		p.interpreter = nil
	}
	if p.options != nil {
		p.options.Delete()
		p.options = nil
	}
	if p.model != nil {
		p.model.Delete()
		p.model = nil
	}
}
